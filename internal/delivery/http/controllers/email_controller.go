package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"mailroom/internal/delivery/http/helpers"
	"mailroom/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// SendEmailRequest is the request body for POST /send-email.
type SendEmailRequest struct {
	TemplateName string            `json:"template_name"`
	Subject      string            `json:"subject"`
	Recipients   []string          `json:"recipients"`
	Context      map[string]string `json:"context"`
	Attachments  []string          `json:"attachments"`
}

// Validate implements Validator.
func (s SendEmailRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.TemplateName) == "" {
		errs = append(errs, "template_name is required")
	}
	if strings.TrimSpace(s.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if len(s.Recipients) == 0 {
		errs = append(errs, "recipients is required")
	}
	for _, rcpt := range s.Recipients {
		if !emailRegexp.MatchString(strings.TrimSpace(rcpt)) {
			errs = append(errs, "invalid recipient address: "+rcpt)
		}
	}
	return errs
}

// GenerateEmailHTMLRequest is the request body for POST /generate-email-html.
// template_name may instead be supplied as a query parameter.
type GenerateEmailHTMLRequest struct {
	TemplateName string            `json:"template_name"`
	Context      map[string]string `json:"context"`
}

// HTMLContentResponse is the payload for POST /generate-email-html.
type HTMLContentResponse struct {
	HTMLContent string `json:"html_content"`
}

// SendEmailSuccessResponse is the success response envelope for POST /send-email (200).
type SendEmailSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GenerateHTMLSuccessResponse is the success response envelope for POST /generate-email-html (200).
type GenerateHTMLSuccessResponse struct {
	Data  HTMLContentResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EmailController handles the send and preview endpoints.
type EmailController struct {
	Logger  *slog.Logger
	Service domain.EmailService
}

// NewEmailController creates an EmailController with the given logger and service.
func NewEmailController(logger *slog.Logger, svc domain.EmailService) *EmailController {
	return &EmailController{
		Logger:  logger,
		Service: svc,
	}
}

// SendEmail godoc
// @Summary Send a templated email
// @Description Render the named template with the given context and send the result to all recipients over the configured transport. Attachment paths that do not exist on the server are skipped silently.
// @Tags emails
// @Accept json
// @Produce json
// @Param body body SendEmailRequest true "Send request"
// @Success 200 {object} controllers.SendEmailSuccessResponse "data contains the send confirmation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /send-email [post]
func (c *EmailController) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req SendEmailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	email := &domain.TemplatedEmail{
		TemplateName: req.TemplateName,
		Subject:      req.Subject,
		Recipients:   req.Recipients,
		Context:      req.Context,
		Attachments:  req.Attachments,
	}
	// Resolve/render/transport failures all surface as Internal here; the
	// send path does not distinguish a missing template from a dead server.
	if err := c.Service.SendTemplated(r.Context(), email); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "Failed to send email: "+err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "Email sent successfully",
	})
}

// GenerateHTML godoc
// @Summary Generate HTML from a template
// @Description Render the named template with the given context and return the HTML without sending anything.
// @Tags emails
// @Accept json
// @Produce json
// @Param template_name query string false "Template name (overrides the body field)"
// @Param body body GenerateEmailHTMLRequest true "Render request"
// @Success 200 {object} controllers.GenerateHTMLSuccessResponse "data contains the rendered HTML"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /generate-email-html [post]
func (c *EmailController) GenerateHTML(w http.ResponseWriter, r *http.Request) {
	var req GenerateEmailHTMLRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if q := r.URL.Query().Get("template_name"); q != "" {
		req.TemplateName = q
	}
	if strings.TrimSpace(req.TemplateName) == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "template_name is required")
		return
	}
	html, err := c.Service.GenerateHTML(r.Context(), req.TemplateName, req.Context)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Template '"+req.TemplateName+"' not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HTMLContentResponse{HTMLContent: html})
}
