package logs

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New – logger do pliku (append) i opcjonalnie na konsolę.
// Zwraca też plik, żeby main mógł go zamknąć.
func New(logFilePath, level string, withConsole bool) (zerolog.Logger, io.Closer, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("nie można otworzyć pliku log: %w", err)
	}

	var writer io.Writer = logFile
	if withConsole {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		writer = zerolog.MultiLevelWriter(logFile, consoleWriter)
	}

	return NewWriter(writer, level), logFile, nil
}

// NewWriter – logger z timestampem i info o miejscu wywołania
func NewWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().
		Timestamp().
		Caller().
		Logger()
}
