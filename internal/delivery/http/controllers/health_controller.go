package controllers

import (
	"net/http"

	"mailroom/internal/delivery/http/helpers"
)

// MessageResponse is the payload for the liveness endpoint.
type MessageResponse struct {
	Message string `json:"message"`
}

// LiveSuccessResponse is the success response envelope for GET / (200).
type LiveSuccessResponse struct {
	Data  MessageResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// HealthController handles the liveness endpoint.
type HealthController struct{}

// NewHealthController creates a HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Live godoc
// @Summary Liveness check
// @Description Returns a static message confirming the service is running.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.LiveSuccessResponse "data contains the liveness message"
// @Router / [get]
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "Email Generator API is running"})
}
