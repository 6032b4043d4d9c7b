package constants

// Context keys set by middleware
const (
	ContextKeyRequestID = "RequestID"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
	HeaderFormID    = "X-Form-ID"
)

// FieldFormID is the posted field that carries the form instance id when no header is sent.
const FieldFormID = "form_id"
