package notify

import (
	"sync"
	"time"

	"order-dashboard/internal/client"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Severity of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is a transient user-visible message.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultDisplayDuration is how long a notification stays visible.
const DefaultDisplayDuration = 6 * time.Second

// Center holds the single notification currently shown to the user.
// A new notification replaces the previous one; notifications expire after
// the display duration.
type Center struct {
	mu       sync.RWMutex
	current  *Notification
	duration time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewCenter creates an empty notification center. A non-positive duration
// keeps notifications until dismissed.
func NewCenter(duration time.Duration, logger zerolog.Logger) *Center {
	return &Center{
		duration: duration,
		now:      time.Now,
		logger:   logger.With().Str("component", "notify").Logger(),
	}
}

// Success publishes a success notification.
func (c *Center) Success(message string) {
	c.publish(message, SeveritySuccess)
	c.logger.Info().Str("message", message).Msg("success notification")
}

// Error publishes an error notification. The backend-provided message in err
// is shown when present, fallback otherwise.
func (c *Center) Error(fallback string, err error) {
	message := fallback
	if msg, ok := client.MessageOf(err); ok {
		message = msg
	}

	c.publish(message, SeverityError)
	c.logger.Error().Err(err).Str("message", message).Msg("error notification")
}

// Current returns the notification being shown, if any.
func (c *Center) Current() (Notification, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil || c.expired(c.current) {
		return Notification{}, false
	}
	return *c.current, true
}

// Dismiss clears the current notification. It reports whether one was shown.
func (c *Center) Dismiss() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	shown := c.current != nil && !c.expired(c.current)
	c.current = nil
	return shown
}

func (c *Center) expired(n *Notification) bool {
	return c.duration > 0 && c.now().Sub(n.CreatedAt) >= c.duration
}

func (c *Center) publish(message string, severity Severity) {
	n := &Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: c.now().UTC(),
	}

	c.mu.Lock()
	c.current = n
	c.mu.Unlock()
}
