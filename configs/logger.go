package configs

import (
	"log/slog"
	"os"
	"strings"
)

var Logger *slog.Logger

// InitLogger настраивает глобальный slog-логгер сервиса.
// В продакшене — компактный JSON, в разработке — JSON с источником и локальным временем.
func InitLogger(level string) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if os.Getenv("ENV") != "production" {
		opts.AddSource = true
		opts.ReplaceAttr = replaceTimeAttr
	}

	Logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	slog.SetDefault(Logger)

	slog.Info("Логгер инициализирован", "level", level)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceTimeAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String("time", a.Value.Time().Local().Format("2006-01-02 15:04:05"))
	}
	return a
}
