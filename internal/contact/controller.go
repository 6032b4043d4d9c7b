// Package contact implements the contact form submission workflow: honeypot gating,
// validation, one relay call per attempt and the status shown back to the visitor.
package contact

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/exovance/site/internal/relay"
)

// Status is the visible state of a form.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText renders the status name in JSON.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Messages shown to the visitor.
const (
	NoticeSent    = "Thanks — your message has been sent."
	NoticeFailed  = "Sorry, something went wrong. Please try again."
	NoticeInvalid = "Please check the highlighted fields and try again."

	LabelIdle    = "Send message"
	LabelSending = "Sending..."
)

// Logger receives relay failure details. The visitor never sees them.
type Logger interface {
	Error(format string, v ...interface{})
}

// Config is the per-form configuration.
type Config struct {
	Credentials relay.Credentials
	Mapping     FieldMapping
}

// Outcome is the visible result of one attempt.
type Outcome struct {
	Status Status `json:"status"`
	Notice string `json:"message,omitempty"`
}

// Controller owns the lifecycle of one form instance.
type Controller struct {
	cfg    Config
	relay  relay.Relay
	logger Logger
	now    func() time.Time

	inFlight atomic.Bool

	mu         sync.Mutex
	fields     Fields
	status     Status
	notice     string
	lastActive time.Time
}

// NewController creates a controller for one form. An empty mapping uses DefaultMapping.
func NewController(cfg Config, r relay.Relay, logger Logger) *Controller {
	if cfg.Mapping == (FieldMapping{}) {
		cfg.Mapping = DefaultMapping
	}
	c := &Controller{
		cfg:    cfg,
		relay:  r,
		logger: logger,
		now:    time.Now,
	}
	c.lastActive = c.now()
	return c
}

// Submit runs one attempt. The returned error classifies it: ErrSubmissionInFlight,
// ErrSpamDetected, a *ValidationError, or an error wrapping ErrRelay.
func (c *Controller) Submit(ctx context.Context, f Fields) (Outcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return c.Outcome(), ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	c.status = StatusIdle
	c.notice = ""
	c.lastActive = c.now()
	c.mu.Unlock()

	if f.Honeypot != "" {
		return c.Outcome(), ErrSpamDetected
	}

	if err := Validate(f); err != nil {
		c.mu.Lock()
		c.fields = f
		c.status = StatusFailed
		c.notice = NoticeInvalid
		c.mu.Unlock()
		return c.Outcome(), err
	}

	c.mu.Lock()
	c.fields = f
	c.status = StatusSending
	c.mu.Unlock()

	err := c.relay.Send(ctx, c.cfg.Credentials, c.cfg.Mapping.Params(f))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Contact relay failed: %v", err)
		}
		c.status = StatusFailed
		c.notice = NoticeFailed
		return Outcome{Status: c.status, Notice: c.notice}, fmt.Errorf("%w: %w", ErrRelay, err)
	}

	c.fields = Fields{}
	c.status = StatusSucceeded
	c.notice = NoticeSent
	return Outcome{Status: c.status, Notice: c.notice}, nil
}

// Outcome returns the current status and notice.
func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Outcome{Status: c.status, Notice: c.notice}
}

func (c *Controller) Status() Status {
	return c.Outcome().Status
}

func (c *Controller) Notice() string {
	return c.Outcome().Notice
}

// Fields returns the values currently held by the form.
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Sending reports whether the submit control is disabled.
func (c *Controller) Sending() bool {
	return c.inFlight.Load()
}

// SubmitLabel is the text of the submit control.
func (c *Controller) SubmitLabel() string {
	if c.Sending() {
		return LabelSending
	}
	return LabelIdle
}

// Mapping returns the field mapping this form uses.
func (c *Controller) Mapping() FieldMapping {
	return c.cfg.Mapping
}

// LastActive is the time of the latest submission activity.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Controller) touch(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.lastActive) {
		c.lastActive = t
	}
}
