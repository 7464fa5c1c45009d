package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice levels mirror the alert styles of the frontend
const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeWarning = "warning"
	NoticeDanger  = "danger"
)

// noticeTTL is how long a notice stays visible before auto-dismissing
const noticeTTL = 5 * time.Second

// Notice is a transient, auto-dismissing user notification
type Notice struct {
	ID      string    `json:"id"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// NoticeBoard collects active notices. Expired notices are pruned on read;
// nothing is ever fatal, the UI stays interactive after any failure.
type NoticeBoard struct {
	mu      sync.Mutex
	notices []Notice
	now     func() time.Time
}

// NewNoticeBoard creates an empty notice board
func NewNoticeBoard() *NoticeBoard {
	return &NoticeBoard{now: time.Now}
}

// Push adds a notice
func (b *NoticeBoard) Push(level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, Notice{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      b.now(),
	})
}

// Active returns the notices that have not yet expired, oldest first
func (b *NoticeBoard) Active() []Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	cutoff := b.now().Add(-noticeTTL)
	kept := b.notices[:0]
	for _, n := range b.notices {
		if n.At.After(cutoff) {
			kept = append(kept, n)
		}
	}
	b.notices = kept
	return append([]Notice(nil), kept...)
}
