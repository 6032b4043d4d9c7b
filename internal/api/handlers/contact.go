package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/exovance/site/internal/api/constants"
	"github.com/exovance/site/internal/api/dto/common"
	contactdto "github.com/exovance/site/internal/api/dto/v1/contact"
	"github.com/exovance/site/internal/contact"
	"github.com/exovance/site/internal/metrics"
	"github.com/exovance/site/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var formIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

const maxMultipartMemory = 64 << 10

type ContactHandler struct {
	registry *contact.Registry
	mapping  contact.FieldMapping
	metrics  *metrics.Metrics
}

func NewContactHandler(registry *contact.Registry, mapping contact.FieldMapping, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{
		registry: registry,
		mapping:  mapping,
		metrics:  m,
	}
}

// Submit handles POST /api/v1/contact/submit
func (h *ContactHandler) Submit(c *gin.Context) {
	fields, postedID, err := h.bindFields(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.HandleClientError(c, http.StatusRequestEntityTooLarge, common.ErrCodePayloadTooLarge, "Request body too large", nil)
			return
		}
		utils.HandleClientError(c, http.StatusBadRequest, common.ErrCodeBadRequest, "Invalid request body", nil)
		return
	}

	formID := resolveFormID(c.GetHeader(constants.HeaderFormID), postedID)
	form, err := h.registry.Get(formID)
	if err != nil {
		utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable, "Contact form temporarily unavailable")
		return
	}
	c.Header(constants.HeaderFormID, formID)

	// The relay call runs to completion even if the visitor disconnects.
	ctx := context.WithoutCancel(c.Request.Context())
	outcome, err := form.Submit(ctx, fields)

	resp := contactdto.SubmitResponse{
		FormID:  formID,
		Status:  outcome.Status,
		Message: outcome.Notice,
	}

	var verr *contact.ValidationError
	switch {
	case err == nil:
		h.metrics.ObserveSubmission(metrics.OutcomeSucceeded)
		utils.HandleSuccess(c, resp)

	case errors.Is(err, contact.ErrSpamDetected):
		// The form stays idle, but the reply matches a delivered message.
		h.metrics.ObserveSubmission(metrics.OutcomeSpam)
		resp.Status = contact.StatusSucceeded
		resp.Message = contact.NoticeSent
		utils.HandleSuccess(c, resp)

	case errors.Is(err, contact.ErrSubmissionInFlight):
		h.metrics.ObserveSubmission(metrics.OutcomeInFlight)
		utils.HandleClientError(c, http.StatusConflict, common.ErrCodeConflict, "A submission is already in progress.", resp)

	case errors.As(err, &verr):
		h.metrics.ObserveSubmission(metrics.OutcomeInvalid)
		utils.HandleClientError(c, http.StatusBadRequest, common.ErrCodeValidation, outcome.Notice, h.fieldErrors(verr))

	default:
		// Already logged by the controller; the visitor only gets the generic notice.
		h.metrics.ObserveSubmission(metrics.OutcomeFailed)
		utils.HandleClientError(c, http.StatusBadGateway, common.ErrCodeBadGateway, outcome.Notice, resp)
	}
}

// FormStatus handles GET /api/v1/contact/forms/:id
func (h *ContactHandler) FormStatus(c *gin.Context) {
	formID := c.Param("id")
	form, ok := h.registry.Lookup(formID)
	if !ok {
		utils.HandleClientError(c, http.StatusNotFound, common.ErrCodeNotFound, "Form not found", nil)
		return
	}

	outcome := form.Outcome()
	utils.HandleSuccess(c, contactdto.FormStatusResponse{
		FormID:      formID,
		Status:      outcome.Status,
		Message:     outcome.Notice,
		SubmitLabel: form.SubmitLabel(),
		Sending:     form.Sending(),
	})
}

// bindFields reads the mapped field names from a JSON or form-encoded body.
func (h *ContactHandler) bindFields(c *gin.Context) (contact.Fields, string, error) {
	var get func(string) string

	switch c.ContentType() {
	case gin.MIMEJSON:
		body := map[string]string{}
		if err := c.ShouldBindJSON(&body); err != nil {
			return contact.Fields{}, "", err
		}
		get = func(key string) string { return body[key] }

	case gin.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return contact.Fields{}, "", err
		}
		get = c.Request.PostFormValue

	case gin.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return contact.Fields{}, "", err
		}
		get = c.Request.PostFormValue

	default:
		return contact.Fields{}, "", fmt.Errorf("unsupported content type %q", c.ContentType())
	}

	return h.mapping.FromValues(get), get(constants.FieldFormID), nil
}

// fieldErrors reports failing fields under the names the form posts them with.
func (h *ContactHandler) fieldErrors(verr *contact.ValidationError) []contact.FieldError {
	names := map[string]string{
		"name":    h.mapping.Name,
		"email":   h.mapping.Email,
		"message": h.mapping.Message,
	}
	out := make([]contact.FieldError, 0, len(verr.Fields))
	for _, fe := range verr.Fields {
		if mapped, ok := names[fe.Field]; ok {
			fe.Field = mapped
		}
		out = append(out, fe)
	}
	return out
}

// resolveFormID prefers the header, then the posted field, then a fresh id.
func resolveFormID(header, posted string) string {
	for _, id := range []string{header, posted} {
		if formIDPattern.MatchString(id) {
			return id
		}
	}
	return uuid.New().String()
}
