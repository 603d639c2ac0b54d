package client

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/sukalov/chordsheet/internal/bot"
	"github.com/sukalov/chordsheet/internal/chordpro"
	"github.com/sukalov/chordsheet/internal/db"
	"github.com/sukalov/chordsheet/internal/logger"
	"github.com/sukalov/chordsheet/internal/lyrics"
	"github.com/sukalov/chordsheet/internal/songbook"
)

// Telegram rejects longer messages.
const messageLimit = 4096

const listLimit = 10

const requestTimeout = 30 * time.Second

type Songbook interface {
	Sheet(ctx context.Context, id string) (songbook.Sheet, error)
	Text(ctx context.Context, id string, opts chordpro.TextOptions) (string, error)
	Save(ctx context.Context, id, text, sourceURL string) (db.Arrangement, error)
	List(ctx context.Context) ([]db.Arrangement, error)
}

type Importer interface {
	Import(ctx context.Context, url string) (*lyrics.ImportResult, error)
}

type ClientHandlers struct {
	songs    Songbook
	importer Importer
	admins   map[string]bool
}

func NewClientHandlers(songs Songbook, importer Importer, adminUsernames []string) *ClientHandlers {
	admins := make(map[string]bool)
	for _, username := range adminUsernames {
		admins[strings.TrimPrefix(username, "@")] = true
	}

	return &ClientHandlers{
		songs:    songs,
		importer: importer,
		admins:   admins,
	}
}

// Handlers returns the routing table for the chord bot.
func (h *ClientHandlers) Handlers() bot.Handlers {
	return bot.Handlers{
		Commands: map[string]bot.HandlerFunc{
			"start":  h.startHandler,
			"chords": h.chordsHandler,
			"sheet":  h.sheetHandler,
			"list":   h.listHandler,
			"import": h.importHandler,
		},
		Messages: []bot.HandlerFunc{randomMessageHandler},
		Callbacks: map[string]bot.HandlerFunc{
			"chords": h.chordsCallbackHandler,
			"sheet":  h.sheetCallbackHandler,
		},
	}
}

func (h *ClientHandlers) startHandler(m bot.Messenger, update tgbotapi.Update) error {
	message := update.Message

	// deep links arrive as "/start <id>"
	if id := strings.TrimSpace(message.CommandArguments()); id != "" {
		return h.sendChords(m, message.Chat.ID, id)
	}

	return m.SendMessage(
		message.Chat.ID,
		"привет! я присылаю аккорды.\n\n/list — все песни\n/chords <id> — аккорды песни\n/sheet <id> — аккорды html-файлом",
	)
}

func (h *ClientHandlers) chordsHandler(m bot.Messenger, update tgbotapi.Update) error {
	message := update.Message

	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		return m.SendMessage(message.Chat.ID, "напишите id песни: /chords <id>")
	}
	return h.sendChords(m, message.Chat.ID, id)
}

func (h *ClientHandlers) chordsCallbackHandler(m bot.Messenger, update tgbotapi.Update) error {
	query := update.CallbackQuery
	if query.Message == nil {
		return nil
	}

	_, id, _ := strings.Cut(query.Data, ":")
	return h.sendChords(m, query.Message.Chat.ID, id)
}

func (h *ClientHandlers) sendChords(m bot.Messenger, chatID int64, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	text, err := h.songs.Text(ctx, id, chordpro.TextOptions{})
	if errors.Is(err, db.ErrNotFound) {
		return m.SendMessage(chatID, "извините, песни с таким id нет")
	}
	if err != nil {
		logger.Error("failed to render chords", "id", id, "error", err)
		return m.SendMessage(chatID, "произошла ошибка при поиске песни")
	}

	chunks := PreChunks(text, messageLimit)
	if len(chunks) == 0 {
		return m.SendMessage(chatID, "в этой песне пока нет текста")
	}
	for _, chunk := range chunks {
		if err := m.SendHTML(chatID, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (h *ClientHandlers) sheetHandler(m bot.Messenger, update tgbotapi.Update) error {
	message := update.Message

	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		return m.SendMessage(message.Chat.ID, "напишите id песни: /sheet <id>")
	}
	return h.sendSheet(m, message.Chat.ID, id)
}

func (h *ClientHandlers) sheetCallbackHandler(m bot.Messenger, update tgbotapi.Update) error {
	query := update.CallbackQuery
	if query.Message == nil {
		return nil
	}

	_, id, _ := strings.Cut(query.Data, ":")
	return h.sendSheet(m, query.Message.Chat.ID, id)
}

func (h *ClientHandlers) sendSheet(m bot.Messenger, chatID int64, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	sheet, err := h.songs.Sheet(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return m.SendMessage(chatID, "извините, песни с таким id нет")
	}
	if err != nil {
		logger.Error("failed to render sheet", "id", id, "error", err)
		return m.SendMessage(chatID, "произошла ошибка при поиске песни")
	}

	logger.Debug("sending sheet", "id", id, "cached", sheet.Cached)
	return m.SendDocument(chatID, sheet.ID+".html", SheetDocument(sheet), sheetCaption(sheet))
}

// SheetDocument wraps rendered sheet markup into a standalone HTML page.
func SheetDocument(sheet songbook.Sheet) []byte {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
	b.WriteString(html.EscapeString(sheetCaption(sheet)))
	b.WriteString("</title></head><body>")
	b.WriteString(sheet.HTML)
	b.WriteString("</body></html>\n")
	return []byte(b.String())
}

func sheetCaption(sheet songbook.Sheet) string {
	if sheet.Artist == "" {
		return sheet.Title
	}
	return sheet.Artist + " - " + sheet.Title
}

func (h *ClientHandlers) listHandler(m bot.Messenger, update tgbotapi.Update) error {
	message := update.Message

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	list, err := h.songs.List(ctx)
	if err != nil {
		logger.Error("failed to list arrangements", "error", err)
		return m.SendMessage(message.Chat.ID, "произошла ошибка при загрузке песен")
	}
	if len(list) == 0 {
		return m.SendMessage(message.Chat.ID, "песен пока нет")
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range list {
		if len(rows) >= listLimit {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(songbook.FormatSongName(a), "chords:"+a.ID),
			tgbotapi.NewInlineKeyboardButtonData("html", "sheet:"+a.ID),
		))
	}

	text := "песни:"
	if len(list) > listLimit {
		text += fmt.Sprintf("\n(показаны первые %d из %d)", listLimit, len(list))
	}
	return m.SendMessageWithButtons(message.Chat.ID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *ClientHandlers) importHandler(m bot.Messenger, update tgbotapi.Update) error {
	message := update.Message

	if message.From == nil || !h.admins[message.From.UserName] {
		return m.SendMessage(message.Chat.ID, "вы не админ")
	}

	url := strings.TrimSpace(message.CommandArguments())
	if url == "" {
		return m.SendMessage(message.Chat.ID, "напишите ссылку: /import <url>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	res, err := h.importer.Import(ctx, url)
	if errors.Is(err, lyrics.ErrUnsupportedSource) {
		return m.SendMessage(message.Chat.ID, "поддерживаются только ссылки на amdm.ru")
	}
	if err != nil {
		logger.Error("import failed", "url", url, "error", err)
		return m.SendMessage(message.Chat.ID, "не удалось загрузить страницу")
	}

	id := songbook.NewID(res.Song.Artist, res.Song.Title)
	a, err := h.songs.Save(ctx, id, res.ChordPro, res.URL)
	if err != nil {
		logger.Error("failed to save import", "url", url, "error", err)
		return m.SendMessage(message.Chat.ID, "не удалось сохранить песню")
	}

	logger.Success("song imported", "id", id, "url", url)
	return m.SendMessage(message.Chat.ID,
		fmt.Sprintf("сохранено: %s\nid: %s", songbook.FormatSongName(a), id))
}

func randomMessageHandler(m bot.Messenger, update tgbotapi.Update) error {
	if update.Message == nil {
		return nil
	}
	return m.SendMessage(
		update.Message.Chat.ID,
		"этого я не понимаю...\n\nсписок песен: /list",
	)
}

const (
	preOpen  = "<pre>"
	preClose = "</pre>"
)

// PreChunks escapes text and wraps it in <pre> blocks that each fit into
// limit bytes. Text is split on line boundaries; a single line longer than
// a block is cut.
func PreChunks(text string, limit int) []string {
	room := limit - len(preOpen) - len(preClose)

	var (
		chunks []string
		cur    strings.Builder
	)
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		chunks = append(chunks, preOpen+strings.TrimRight(cur.String(), "\n")+preClose)
		cur.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		line = html.EscapeString(line)
		if cur.Len()+len(line) > room {
			flush()
		}
		for len(line) > room {
			cut := safeCut(line, room)
			chunks = append(chunks, preOpen+line[:cut]+preClose)
			line = line[cut:]
		}
		cur.WriteString(line)
	}
	flush()

	return chunks
}

// safeCut moves n back so neither an escape sequence nor a UTF-8 sequence
// is split.
func safeCut(s string, n int) int {
	limit := n
	if amp := strings.LastIndexByte(s[:n], '&'); amp >= 0 && !strings.Contains(s[amp:n], ";") {
		n = amp
	}
	for n > 0 && n < len(s) && s[n]&0xC0 == 0x80 {
		n--
	}
	if n == 0 {
		return limit
	}
	return n
}
