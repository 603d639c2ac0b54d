package chordpro

// Song is the structured result of parsing a ChordPro document
type Song struct {
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Key    string `json:"key,omitempty" yaml:"key,omitempty"`
	Tempo  string `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Capo   string `json:"capo,omitempty" yaml:"capo,omitempty"`

	Sections []Section `json:"sections" yaml:"sections"`

	// Directives holds every directive seen, keyed by lower-cased name.
	Directives map[string]string `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// Section is a named group of rendered lines
type Section struct {
	Type  string   `json:"type" yaml:"type"`
	Label string   `json:"label,omitempty" yaml:"label,omitempty"`
	Lines []string `json:"lines" yaml:"lines"`

	// Source holds the raw content line behind each entry of Lines ("" for blank lines).
	Source []string `json:"source,omitempty" yaml:"source,omitempty"`
}

// ChordPosition is a chord anchored at a rune offset into the chord-free lyric
type ChordPosition struct {
	Chord     string `json:"chord" yaml:"chord"`
	CharIndex int    `json:"char_index" yaml:"char_index"`
}

// SectionVerse is the type of implicit sections and the one type whose label is never shown.
const SectionVerse = "verse"

// DirectiveKind classifies a directive key
type DirectiveKind int

const (
	DirectiveUnknown DirectiveKind = iota
	DirectiveMetadata
	DirectiveSectionStart
	DirectiveSectionEnd
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveMetadata:
		return "metadata"
	case DirectiveSectionStart:
		return "section_start"
	case DirectiveSectionEnd:
		return "section_end"
	}
	return "unknown"
}

// Directive is one parsed `{key: value}` line
type Directive struct {
	Kind  DirectiveKind
	Key   string
	Value string
	// Name is the section type for start_of_/end_of_ directives.
	Name string
}

// Metadata keys copied onto Song fields
const (
	KeyTitle  = "title"
	KeyArtist = "artist"
	KeyKey    = "key"
	KeyTempo  = "tempo"
	KeyCapo   = "capo"
)

const (
	sectionStartPrefix = "start_of_"
	sectionEndPrefix   = "end_of_"
)
