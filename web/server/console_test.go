package server

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func newTestLogger(traceID string, consoleChan chan<- ConsoleMessage) (*WebLogger, *bytes.Buffer) {
	var out bytes.Buffer
	return &WebLogger{traceID: traceID, consoleChan: consoleChan, out: &out}, &out
}

func TestWebLogger_Printf(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		args    []interface{}
		message string
	}{
		{"plain", "Test log message\n", nil, "Test log message\n"},
		{"formatted", "Tracing %d rays through %d elements...\n", []interface{}{91, 2}, "Tracing 91 rays through 2 elements...\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			logger, out := newTestLogger("single-surface", messageChan)

			logger.Printf(tt.format, tt.args...)

			if want := "[single-surface] " + tt.message; out.String() != want {
				t.Errorf("Server log: expected %q, got %q", want, out.String())
			}

			select {
			case msg := <-messageChan:
				// the console copy carries no prefix
				if msg.Message != tt.message {
					t.Errorf("Expected message %q, got %q", tt.message, msg.Message)
				}
				if msg.Level != "info" {
					t.Errorf("Expected level 'info', got '%s'", msg.Level)
				}
				if time.Since(msg.Timestamp) > time.Second {
					t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
				}
			default:
				t.Error("Expected a console message")
			}
		})
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger, out := newTestLogger("full", messageChan)

	// the second and third messages are dropped from the console without
	// blocking, but still reach the server log
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	if msg := <-messageChan; msg.Message != "Message 1\n" {
		t.Errorf("Expected the first message to be kept, got %q", msg.Message)
	}
	if want := "[full] Message 1\n[full] Message 2\n[full] Message 3\n"; out.String() != want {
		t.Errorf("Server log: expected %q, got %q", want, out.String())
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger, out := newTestLogger("nil", nil)
	logger.Printf("Test message with nil channel\n")

	if want := "[nil] Test message with nil channel\n"; out.String() != want {
		t.Errorf("Server log: expected %q, got %q", want, out.String())
	}
}

func TestConsoleMessage_JSON(t *testing.T) {
	msg := ConsoleMessage{Message: "Traced 91 rays\n", Timestamp: time.Unix(0, 0).UTC(), Level: "info"}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fields["message"] != msg.Message || fields["level"] != "info" || fields["timestamp"] != "1970-01-01T00:00:00Z" {
		t.Errorf("Unexpected JSON fields: %v", fields)
	}
}

func TestDrainConsole(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger, _ := newTestLogger("drain", messageChan)
	logger.Printf("first\n")
	logger.Printf("second\n")
	close(messageChan)

	messages := drainConsole(messageChan)
	if len(messages) != 2 || messages[0].Message != "first\n" || messages[1].Message != "second\n" {
		t.Errorf("Unexpected messages: %+v", messages)
	}

	empty := make(chan ConsoleMessage)
	close(empty)
	if got := drainConsole(empty); got == nil || len(got) != 0 {
		t.Errorf("Expected an empty, non-nil slice, got %v", got)
	}
}
