package amdm

import (
	"errors"
	"time"
)

// ErrBlockNotFound is returned when a page has no chords block.
var ErrBlockNotFound = errors.New("could not find target element with chords and lyrics")

// Result is a chord page converted to ChordPro
type Result struct {
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Artist    string    `json:"artist,omitempty"`
	ChordPro  string    `json:"chordpro"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SectionType is a section keyword as written on amdm.ru
type SectionType string

const (
	SectionVerse  SectionType = "Куплет"
	SectionChorus SectionType = "Припев"
	SectionBridge SectionType = "Переход"
	SectionIntro  SectionType = "Вступление"
	SectionSolo   SectionType = "Проигрыш"
	SectionOutro  SectionType = "Кода"
)

// sectionNames maps amdm keywords onto ChordPro section types.
var sectionNames = map[SectionType]string{
	SectionVerse:  "verse",
	SectionChorus: "chorus",
	SectionBridge: "bridge",
	SectionIntro:  "intro",
	SectionSolo:   "solo",
	SectionOutro:  "outro",
}

// ProcessingConfig holds configuration for text processing
type ProcessingConfig struct {
	// SkipSections are dropped from the output together with their lines.
	SkipSections []SectionType
	// MaxBlankLines caps consecutive blank lines inside a section.
	MaxBlankLines int
}

func DefaultConfig() *ProcessingConfig {
	return &ProcessingConfig{MaxBlankLines: 1}
}
