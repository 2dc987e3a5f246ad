package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"mailroom/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(healthController *controllers.HealthController, templateController *controllers.TemplateController, emailController *controllers.EmailController) *http.ServeMux {
	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /{$}", healthController.Live)

	// Templates
	mux.HandleFunc("GET /templates", templateController.List)
	mux.HandleFunc("POST /upload-template", templateController.Upload)

	// Emails
	mux.HandleFunc("POST /send-email", emailController.SendEmail)
	mux.HandleFunc("POST /generate-email-html", emailController.GenerateHTML)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
