package contact

import (
	"errors"
	"fmt"

	"github.com/exovance/site/internal/relay"
)

// Fields is the content of one contact form.
type Fields struct {
	Name     string `json:"name" validate:"nonblank,max=100"`
	Email    string `json:"email" validate:"nonblank,max=255,email"`
	Message  string `json:"message" validate:"nonblank,max=5000"`
	Honeypot string `json:"-" validate:"-"`
}

// IsZero reports whether every field is empty.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

// FieldMapping names the form inputs and the relay template variables they feed.
type FieldMapping struct {
	Name     string
	Email    string
	Message  string
	Honeypot string
}

// DefaultMapping matches the site's contact template.
var DefaultMapping = FieldMapping{
	Name:     "from_name",
	Email:    "reply_to",
	Message:  "message",
	Honeypot: "website",
}

// Validate requires four distinct, non-empty names.
func (m FieldMapping) Validate() error {
	names := []string{m.Name, m.Email, m.Message, m.Honeypot}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return errors.New("field mapping names must not be empty")
		}
		if seen[n] {
			return fmt.Errorf("field mapping name %q is used twice", n)
		}
		seen[n] = true
	}
	return nil
}

// Params maps the three message fields onto template variables. The honeypot is never sent.
func (m FieldMapping) Params(f Fields) relay.TemplateParams {
	return relay.TemplateParams{
		m.Name:    f.Name,
		m.Email:   f.Email,
		m.Message: f.Message,
	}
}

// FromValues reads fields out of a flat key/value source such as a posted form.
func (m FieldMapping) FromValues(get func(key string) string) Fields {
	return Fields{
		Name:     get(m.Name),
		Email:    get(m.Email),
		Message:  get(m.Message),
		Honeypot: get(m.Honeypot),
	}
}
