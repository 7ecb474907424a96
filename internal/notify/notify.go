// Package notify carries transient user-facing notifications: a per-session
// history and a websocket push feed.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
)

type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     string    `json:"variant"`
	CreatedAt   time.Time `json:"created_at"`
}

func (n Notification) IsDestructive() bool {
	return n.Variant == VariantDestructive
}

func Info(title, description string) Notification {
	return newNotification(title, description, VariantDefault)
}

// Destructive builds an error notification.
func Destructive(title, description string) Notification {
	return newNotification(title, description, VariantDestructive)
}

func newNotification(title, description, variant string) Notification {
	return Notification{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   time.Now().UTC(),
	}
}

type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Fanout delivers to every notifier in order.
type Fanout []Notifier

func (f Fanout) Notify(n Notification) {
	for _, nt := range f {
		if nt != nil {
			nt.Notify(n)
		}
	}
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(Notification) {})

// Recorder keeps the most recent notifications, oldest first.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 50
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, n)
	if over := len(r.items) - r.limit; over > 0 {
		r.items = append([]Notification(nil), r.items[over:]...)
	}
}

func (r *Recorder) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the newest notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
