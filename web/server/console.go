package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel.
// Each message is also written to the server log prefixed with the trace ID.
type WebLogger struct {
	traceID     string
	consoleChan chan<- ConsoleMessage
	out         io.Writer
}

// NewWebLogger creates a new web logger for a specific trace request
func NewWebLogger(traceID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		traceID:     traceID,
		consoleChan: consoleChan,
		out:         os.Stdout,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(wl.out, "[%s] %s", wl.traceID, message)

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}

// drainConsole collects every message left in a closed console channel
func drainConsole(consoleChan <-chan ConsoleMessage) []ConsoleMessage {
	messages := []ConsoleMessage{}
	for msg := range consoleChan {
		messages = append(messages, msg)
	}
	return messages
}

// newServerLogger returns the logger for messages not tied to a request
func newServerLogger() core.Logger {
	return core.NewDefaultLogger()
}
