package controllers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"mailroom/internal/delivery/http/helpers"
	"mailroom/internal/domain"
)

// uploads larger than this are rejected by ParseMultipartForm
const maxUploadBytes = 10 << 20

// TemplateListResponse is the payload for GET /templates.
type TemplateListResponse struct {
	Templates []string `json:"templates"`
}

// StatusResponse is the payload for operations that report success with a message.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListTemplatesSuccessResponse is the success response envelope for GET /templates (200).
type ListTemplatesSuccessResponse struct {
	Data  TemplateListResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// UploadTemplateSuccessResponse is the success response envelope for POST /upload-template (200).
type UploadTemplateSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TemplateController handles template listing and upload endpoints.
type TemplateController struct {
	Logger  *slog.Logger
	Service domain.TemplateService
}

// NewTemplateController creates a TemplateController with the given logger and service.
func NewTemplateController(logger *slog.Logger, svc domain.TemplateService) *TemplateController {
	return &TemplateController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List email templates
// @Description Returns the .html template filenames available in the template directory.
// @Tags templates
// @Produce json
// @Success 200 {object} controllers.ListTemplatesSuccessResponse "data contains the template names"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /templates [get]
func (c *TemplateController) List(w http.ResponseWriter, r *http.Request) {
	names, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, TemplateListResponse{Templates: names})
}

// Upload godoc
// @Summary Upload an email template
// @Description Upload an HTML template file (multipart form field "file"). The filename must end in .html; an existing template of the same name is overwritten.
// @Tags templates
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "HTML template file"
// @Success 200 {object} controllers.UploadTemplateSuccessResponse "data contains the upload confirmation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /upload-template [post]
func (c *TemplateController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	if err := c.Service.Upload(r.Context(), header.Filename, content); err != nil {
		if errors.Is(err, domain.ErrInvalidTemplateName) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Only HTML files are allowed")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Template '%s' uploaded successfully", header.Filename),
	})
}
