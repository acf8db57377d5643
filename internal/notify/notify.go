// Package notify delivers user-facing status notices raised by the
// session, ledger, and application layers.
package notify

import (
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Notice is a single user-facing notification.
type Notice struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Color     string `json:"color,omitempty"`
	AutoClose bool   `json:"auto_close"`
}

// Notifier receives notices for display.
type Notifier interface {
	Show(n Notice)
}

// Info builds an auto-closing informational notice.
func Info(title, message string) Notice {
	return Notice{ID: uuid.NewString(), Title: title, Message: message, AutoClose: true}
}

// Warn builds an auto-closing warning notice.
func Warn(title, message string) Notice {
	return Notice{ID: uuid.NewString(), Title: title, Message: message, Color: "orange", AutoClose: true}
}

// Sticky builds a warning notice that stays until dismissed. Used for
// transaction guidance the user must act on.
func Sticky(title, message string) Notice {
	return Notice{ID: uuid.NewString(), Title: title, Message: message, Color: "orange", AutoClose: false}
}

// LogNotifier writes notices to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Show(notice Notice) {
	n.logger.Info("notice", "title", notice.Title, "message", notice.Message, "color", notice.Color)
}

// Recorder captures notices for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Show(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Notices returns a copy of everything shown so far.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}
