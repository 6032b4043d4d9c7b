package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/exovance/site/internal/relay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Credentials: relay.Credentials{
		ServiceID:  "service_test",
		TemplateID: "template_test",
		PublicKey:  "public_test",
	},
}

var janeFields = Fields{
	Name:    "Jane Doe",
	Email:   "jane@example.com",
	Message: "Interested in your services.",
}

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// blockingRelay holds every Send until release is closed.
type blockingRelay struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func newBlockingRelay() *blockingRelay {
	return &blockingRelay{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (b *blockingRelay) Send(ctx context.Context, _ relay.Credentials, _ relay.TemplateParams) error {
	b.started <- struct{}{}
	<-b.release
	return b.err
}

func TestSubmitSuccess(t *testing.T) {
	rec := &relay.Recorder{}
	c := NewController(testConfig, rec, &captureLogger{})

	out, err := c.Submit(context.Background(), janeFields)
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, out.Status)
	assert.Equal(t, "Thanks — your message has been sent.", out.Notice)
	assert.Equal(t, StatusSucceeded, c.Status())
	assert.True(t, c.Fields().IsZero(), "fields are cleared after success")
	assert.False(t, c.Sending())

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, testConfig.Credentials, calls[0].Credentials)
	assert.Equal(t, relay.TemplateParams{
		"from_name": "Jane Doe",
		"reply_to":  "jane@example.com",
		"message":   "Interested in your services.",
	}, calls[0].Params)
}

func TestSubmitHoneypot(t *testing.T) {
	rec := &relay.Recorder{}
	c := NewController(testConfig, rec, &captureLogger{})

	f := janeFields
	f.Honeypot = "http://spam.example"
	out, err := c.Submit(context.Background(), f)

	assert.ErrorIs(t, err, ErrSpamDetected)
	assert.Equal(t, StatusIdle, out.Status)
	assert.Empty(t, out.Notice)
	assert.Empty(t, rec.Calls())
	assert.True(t, c.Fields().IsZero(), "honeypot submissions are not collected")
}

func TestSubmitValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		failed []string
	}{
		{"bad email", Fields{Name: "Jane", Email: "not-an-email", Message: "Hi"}, []string{"email"}},
		{"missing name", Fields{Email: "jane@example.com", Message: "Hi"}, []string{"name"}},
		{"blank message", Fields{Name: "Jane", Email: "jane@example.com", Message: "   "}, []string{"message"}},
		{"everything missing", Fields{}, []string{"name", "email", "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &relay.Recorder{}
			c := NewController(testConfig, rec, &captureLogger{})

			out, err := c.Submit(context.Background(), tt.fields)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			for _, field := range tt.failed {
				assert.True(t, verr.Has(field), "expected %s to fail", field)
			}

			assert.Empty(t, rec.Calls())
			assert.Equal(t, StatusFailed, out.Status)
			assert.Equal(t, NoticeInvalid, out.Notice)
			assert.Equal(t, tt.fields, c.Fields(), "entered values are kept")
		})
	}
}

func TestSubmitRelayFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"non-200", &relay.Error{StatusCode: 400, Body: "The Public Key is invalid"}},
		{"network", errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &relay.Recorder{Err: tt.err}
			logger := &captureLogger{}
			c := NewController(testConfig, rec, logger)

			out, err := c.Submit(context.Background(), janeFields)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRelay)
			assert.ErrorIs(t, err, tt.err)

			assert.Equal(t, StatusFailed, out.Status)
			assert.Equal(t, "Sorry, something went wrong. Please try again.", out.Notice)
			assert.NotContains(t, out.Notice, tt.err.Error())
			assert.Equal(t, janeFields, c.Fields(), "fields are not cleared on failure")
			assert.Len(t, rec.Calls(), 1)

			require.Len(t, logger.lines, 1)
			assert.Contains(t, logger.lines[0], tt.err.Error())
		})
	}
}

func TestSubmitTwiceSequentially(t *testing.T) {
	rec := &relay.Recorder{}
	c := NewController(testConfig, rec, &captureLogger{})

	_, err := c.Submit(context.Background(), janeFields)
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), janeFields)
	require.NoError(t, err)

	assert.Len(t, rec.Calls(), 2, "no deduplication")
}

func TestSubmitRejectsOverlap(t *testing.T) {
	br := newBlockingRelay()
	c := NewController(testConfig, br, &captureLogger{})

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), janeFields)
		done <- err
	}()
	<-br.started

	assert.True(t, c.Sending())
	assert.Equal(t, StatusSending, c.Status())
	assert.Equal(t, LabelSending, c.SubmitLabel())

	out, err := c.Submit(context.Background(), janeFields)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, StatusSending, out.Status, "the in-flight attempt is untouched")

	close(br.release)
	require.NoError(t, <-done)

	assert.False(t, c.Sending())
	assert.Equal(t, LabelIdle, c.SubmitLabel())
	assert.Equal(t, StatusSucceeded, c.Status())
}

func TestGuardReleasedAfterFailure(t *testing.T) {
	rec := &relay.Recorder{Err: errors.New("boom")}
	c := NewController(testConfig, rec, &captureLogger{})

	_, err := c.Submit(context.Background(), janeFields)
	require.Error(t, err)

	rec.Err = nil
	out, err := c.Submit(context.Background(), janeFields)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, out.Status)
}

func TestNewAttemptResetsStatus(t *testing.T) {
	rec := &relay.Recorder{}
	c := NewController(testConfig, rec, &captureLogger{})

	_, err := c.Submit(context.Background(), janeFields)
	require.NoError(t, err)
	require.Equal(t, StatusSucceeded, c.Status())

	f := janeFields
	f.Honeypot = "filled"
	out, err := c.Submit(context.Background(), f)
	assert.ErrorIs(t, err, ErrSpamDetected)
	assert.Equal(t, StatusIdle, out.Status)
	assert.Empty(t, out.Notice)
}

func TestCustomMapping(t *testing.T) {
	rec := &relay.Recorder{}
	cfg := testConfig
	cfg.Mapping = FieldMapping{Name: "user_name", Email: "user_email", Message: "message", Honeypot: "website"}
	c := NewController(cfg, rec, &captureLogger{})

	_, err := c.Submit(context.Background(), janeFields)
	require.NoError(t, err)

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Jane Doe", calls[0].Params["user_name"])
	assert.Equal(t, "jane@example.com", calls[0].Params["user_email"])
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "sending", StatusSending.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
