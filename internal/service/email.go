package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"hireflow-backend/internal/apperr"
	"hireflow-backend/internal/config"
	"hireflow-backend/internal/logger"
)

// NewMessagingGateway builds the gateway selected by cfg.Provider.
func NewMessagingGateway(cfg config.EmailConfig) (MessagingGateway, error) {
	switch cfg.Provider {
	case "sendgrid":
		return NewSendGridGateway(cfg.SendGridAPIKey, cfg.From, cfg.FromName, cfg.Templates), nil
	case "log", "":
		return NewLogGateway(cfg.From), nil
	default:
		return nil, apperr.Configuration("unsupported email provider %q", cfg.Provider)
	}
}

type sendgridGateway struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	templates map[string]string
}

// NewSendGridGateway sends through SendGrid dynamic templates. templates maps
// a template name to its SendGrid template id.
func NewSendGridGateway(apiKey, fromEmail, fromName string, templates map[string]string) MessagingGateway {
	return &sendgridGateway{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		templates: templates,
	}
}

func (g *sendgridGateway) Send(ctx context.Context, template string, to Recipient, vars map[string]any) error {
	templateID, ok := g.templates[template]
	if !ok || templateID == "" {
		return apperr.Configuration("no sendgrid template id configured for %s", template)
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(g.fromName, g.fromEmail))
	message.SetTemplateID(templateID)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(to.Name, to.Email))
	for key, value := range vars {
		personalization.SetDynamicTemplateData(key, value)
	}
	message.AddPersonalizations(personalization)

	logger.ExternalServiceCall("sendgrid", "send", "template", template, "to", to.Email)
	response, err := g.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "template", template, "to", to.Email)
	if err != nil {
		return fmt.Errorf("failed to send template email: %w", err)
	}
	return nil
}

type logGateway struct {
	from string
}

// NewLogGateway writes every message to the log instead of delivering it.
func NewLogGateway(from string) MessagingGateway {
	return &logGateway{from: from}
}

// Send logs the message. The link variable carries a capability token and
// is never written out.
func (g *logGateway) Send(ctx context.Context, template string, to Recipient, vars map[string]any) error {
	logged := make(map[string]any, len(vars))
	for k, v := range vars {
		if k == "link" {
			continue
		}
		logged[k] = v
	}
	_, hasLink := vars["link"]
	logger.InfoContext(ctx, "Email (log provider)",
		"from", g.from, "to", to.Email, "to_name", to.Name, "template", template, "has_link", hasLink, "vars", logged)
	return nil
}
