package main

import (
	"net/http"
	"os"

	"mailroom/config"
	_ "mailroom/docs"
	emailadapter "mailroom/internal/adapters/email"
	"mailroom/internal/adapters/templatestore"
	httpdelivery "mailroom/internal/delivery/http"
	"mailroom/internal/delivery/http/controllers"
	"mailroom/internal/delivery/http/middleware"
	"mailroom/internal/services"
)

// @title Email Generator API
// @version 1.0.0
// @description Renders HTML email templates with caller-supplied variables and dispatches them over SMTP, optionally with file attachments.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	store, err := templatestore.New(cfg.TemplateDir)
	if err != nil {
		logger.Error("failed to initialize template store", "dir", cfg.TemplateDir, "err", err)
		os.Exit(1)
	}
	renderer := emailadapter.NewTemplateRenderer()
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		SMTP: emailadapter.SMTPConfig{
			Host:     cfg.SMTPServer,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			UseTLS:   cfg.UseTLS,
		},
		SES: emailadapter.SESConfig{
			Region:             cfg.SES.Region,
			AccessKeyID:        cfg.SES.AccessKeyID,
			SecretAccessKey:    cfg.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.SES.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to initialize mailer", "provider", cfg.EmailProvider, "err", err)
		os.Exit(1)
	}

	emailService := services.NewEmailService(store, renderer, mailer)
	templateService := services.NewTemplateService(store)

	healthController := controllers.NewHealthController()
	templateController := controllers.NewTemplateController(logger, templateService)
	emailController := controllers.NewEmailController(logger, emailService)

	mux := httpdelivery.NewRouter(healthController, templateController, emailController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment, "template_dir", cfg.TemplateDir, "email_provider", cfg.EmailProvider)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
