package contact

import "github.com/exovance/site/internal/contact"

// SubmitResponse is returned after a contact form submission
type SubmitResponse struct {
	FormID  string         `json:"form_id"`
	Status  contact.Status `json:"status"`
	Message string         `json:"message,omitempty"`
}

// FormStatusResponse describes the current state of a form instance
type FormStatusResponse struct {
	FormID      string         `json:"form_id"`
	Status      contact.Status `json:"status"`
	Message     string         `json:"message,omitempty"`
	SubmitLabel string         `json:"submit_label"`
	Sending     bool           `json:"sending"`
}
