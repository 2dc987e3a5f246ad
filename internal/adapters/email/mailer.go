package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	mail "github.com/go-mail/mail"

	"mailroom/internal/domain"
)

// SMTPConfig holds configuration for the SMTP transport.
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	UseTLS             bool // issue STARTTLS before authenticating
	InsecureSkipVerify bool
}

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SMTP        SMTPConfig
	SES         SESConfig
}

// NewMailer creates a mailer from config. Provider "smtp" (the default) sends
// through the configured SMTP server; "ses" uses AWS SES raw sends; "noop" or
// unknown uses a no-op mailer.
func NewMailer(config MailerConfig) (domain.Mailer, error) {
	switch config.Provider {
	case "smtp", "":
		smtpConfig := config.SMTP
		d := mail.NewDialer(smtpConfig.Host, smtpConfig.Port, smtpConfig.Username, smtpConfig.Password)
		d.TLSConfig = &tls.Config{
			ServerName:         smtpConfig.Host,
			InsecureSkipVerify: smtpConfig.InsecureSkipVerify,
			MinVersion:         tls.VersionTLS12,
		}
		if smtpConfig.UseTLS {
			d.StartTLSPolicy = mail.MandatoryStartTLS
		} else {
			d.StartTLSPolicy = mail.NoStartTLS
		}
		return &smtpMailer{
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
			send:        d.DialAndSend,
		}, nil
	case "ses":
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			log.Printf("[MAILER] WARNING: TLS certificate verification is disabled for SES. Use only in development.")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		client := ses.NewFromConfig(awsCfg)
		return &sesMailer{
			client:      client,
			fromAddress: config.FromAddress,
			fromName:    config.FromName,
		}, nil
	case "noop":
		return &noopMailer{}, nil
	default:
		log.Printf("[MAILER] Unknown email provider %q, using noop", config.Provider)
		return &noopMailer{}, nil
	}
}

// buildMessage constructs the multipart MIME message: HTML body plus one
// base64-encoded binary part per attachment that exists on disk. Attachment
// paths that do not exist are skipped, not failed.
func buildMessage(fromAddress, fromName string, msg *domain.OutboundMessage) *mail.Message {
	m := mail.NewMessage()
	if fromName != "" {
		m.SetAddressHeader("From", fromAddress, fromName)
	} else {
		m.SetHeader("From", fromAddress)
	}
	m.SetHeader("To", msg.Recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, path := range msg.Attachments {
		if _, err := os.Stat(path); err != nil {
			log.Printf("[MAILER] WARNING: attachment %s not found, skipping", path)
			continue
		}
		m.Attach(path)
	}
	return m
}

type smtpMailer struct {
	fromAddress string
	fromName    string
	send        func(...*mail.Message) error
}

func (s *smtpMailer) Send(msg *domain.OutboundMessage) error {
	m := buildMessage(s.fromAddress, s.fromName, msg)
	if err := s.send(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	log.Printf("[MAILER] Email sent via SMTP to %s", strings.Join(msg.Recipients, ", "))
	return nil
}

type sesMailer struct {
	client      *ses.Client
	fromAddress string
	fromName    string
}

func (s *sesMailer) Send(msg *domain.OutboundMessage) error {
	m := buildMessage(s.fromAddress, s.fromName, msg)
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode email message: %w", err)
	}
	input := &ses.SendRawEmailInput{
		Source:       aws.String(s.fromAddress),
		Destinations: msg.Recipients,
		RawMessage:   &sestypes.RawMessage{Data: buf.Bytes()},
	}
	result, err := s.client.SendRawEmail(context.Background(), input)
	if err != nil {
		return fmt.Errorf("failed to send email via SES: %w", err)
	}
	log.Printf("[MAILER] Email sent via SES. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}

type noopMailer struct{}

func (n *noopMailer) Send(msg *domain.OutboundMessage) error {
	log.Printf("[MAILER] Email would be sent (noop) to %s, subject %q", strings.Join(msg.Recipients, ", "), msg.Subject)
	return nil
}
