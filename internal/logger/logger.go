package logger

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	mu        sync.RWMutex
	base      = slog.New(slog.NewTextHandler(os.Stderr, nil))
	botClient BotClient
	channelID int64
)

// BotClient delivers log lines to a chat channel.
type BotClient interface {
	SendMessage(chatID int64, text string) error
}

// Init forwards info, success and error messages to the given channel.
func Init(client BotClient, logChannelID int64) {
	mu.Lock()
	defer mu.Unlock()

	botClient = client
	channelID = logChannelID
}

// SetDefault replaces the structured logger used for local output.
func SetDefault(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()

	base = l
}

// Logger returns the structured logger used for local output.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return base
}

func Info(message string, args ...any) {
	Logger().Info(message, args...)
	sendLog("ℹ️ INFO", message, args)
}

func Error(message string, args ...any) {
	Logger().Error(message, args...)
	sendLog("❌ ERROR", message, args)
}

func Debug(message string, args ...any) {
	Logger().Debug(message, args...)
}

func Success(message string, args ...any) {
	Logger().Info(message, append([]any{"status", "success"}, args...)...)
	sendLog("✅ SUCCESS", message, args)
}

// LogWithErr logs message as an error when err is set, otherwise as info,
// and returns err wrapped with message.
func LogWithErr(message string, err error) error {
	if err == nil {
		Info(message)
		return nil
	}

	Error(message, "error", err)
	return fmt.Errorf("%s: %w", message, err)
}

func sendLog(prefix, message string, args []any) {
	mu.RLock()
	client, chatID := botClient, channelID
	mu.RUnlock()

	if client == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	logMessage := fmt.Sprintf("[%s] %s\n%s", timestamp, prefix, message)
	for i := 0; i+1 < len(args); i += 2 {
		logMessage += fmt.Sprintf("\n%v: %v", args[i], args[i+1])
	}

	go func() {
		if err := client.SendMessage(chatID, logMessage); err != nil {
			Logger().Warn("failed to send log to channel", "error", err, "log", logMessage)
		}
	}()
}
