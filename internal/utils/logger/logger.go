package logger

import (
	"io"
	"strings"

	"golang.org/x/exp/slog"
)

const (
	envLocal = "local"
	envDev   = "dev"
)

// New создает логгер, пишущий в w.
// local - цветной вывод с уровнем DEBUG, dev - JSON с DEBUG, prod и прочие - JSON с INFO.
// level (LOG_LEVEL) переопределяет уровень окружения, пустой или неизвестный игнорируется.
func New(env, level string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)
	if !ok {
		lvl = defaultLevel(env)
	}
	return newLogger(env, w, lvl)
}

// ParseLevel разбирает debug, info, warn, error без учета регистра
func ParseLevel(s string) (slog.Level, bool) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return lvl, false
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return lvl, false
	}
	return lvl, true
}

// Discard возвращает логгер, который ничего не пишет
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func defaultLevel(env string) slog.Level {
	switch env {
	case envLocal, "", envDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

func newLogger(env string, w io.Writer, level slog.Level) *slog.Logger {
	if env == envLocal || env == "" {
		return newPrettySlog(w, level)
	}

	return slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
	)
}

func newPrettySlog(w io.Writer, level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(w))
}
