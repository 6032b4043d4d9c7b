// Package relay defines the contract for hosted mail relays that dispatch a templated email
// on our behalf.
package relay

import (
	"context"
	"errors"
	"fmt"
)

// ErrRejected is matched by every *Error.
var ErrRejected = errors.New("relay rejected request")

// Credentials identify the relay account and template. They are configuration, not data,
// and are never mutated by a submission.
type Credentials struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is optional. Relays that gate server-side calls use it as an access token.
	PrivateKey string
}

// Validate reports missing identifiers.
func (c Credentials) Validate() error {
	switch {
	case c.ServiceID == "":
		return errors.New("relay service id is required")
	case c.TemplateID == "":
		return errors.New("relay template id is required")
	case c.PublicKey == "":
		return errors.New("relay public key is required")
	}
	return nil
}

// TemplateParams are the named variables substituted into the relay-side template.
type TemplateParams map[string]string

// Relay sends one templated message.
type Relay interface {
	Send(ctx context.Context, creds Credentials, params TemplateParams) error
}

// Error is returned when the relay answers with a non-success status.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("relay returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned status %d: %s", e.StatusCode, e.Body)
}

func (e *Error) Is(target error) bool {
	return target == ErrRejected
}
