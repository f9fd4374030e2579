package bridge

import "github.com/rs/zerolog"

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier – odbiorca komunikatów (log, powiadomienia)
type Notifier interface {
	Notify(level Level, message string)
}

// LogNotifier pisze do zerologa ze źródłem "katana" (jak wc_get_logger w sklepie)
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("source", "katana").Logger()}
}

func (n *LogNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		n.log.Error().Msg(message)
	default:
		n.log.Info().Msg(message)
	}
}

// NopNotifier – nic nie robi
type NopNotifier struct{}

func (NopNotifier) Notify(Level, string) {}
