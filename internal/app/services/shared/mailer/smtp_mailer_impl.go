package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/app/drivers/mailer"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"strings"

	"go.uber.org/zap"
)

type smtpMailer struct {
	Client      *mailer.SMTPClient
	EmailSender string
	Log         *zap.Logger
}

func NewSMTPMailer(client *mailer.SMTPClient, emailSender string, logger *zap.Logger) contracts.Mailer {
	return &smtpMailer{
		Client:      client,
		EmailSender: emailSender,
		Log:         logger,
	}
}

func (m *smtpMailer) SendHTMLEmail(ctx context.Context, to []string, subject, htmlBody string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if err := ctx.Err(); err != nil {
		return exceptions.ErrSMTPSendEmail(err, m.Client.Host)
	}

	msg := []byte(fmt.Sprintf(constvars.EmailSendHTMLSubjectFormat, m.EmailSender, strings.Join(to, ", "), subject, htmlBody))
	addr := fmt.Sprintf("%s:%d", m.Client.Host, m.Client.Port)
	err := smtp.SendMail(addr, m.Client.Auth, m.EmailSender, to, msg)
	if err != nil {
		m.Log.Error("smtpMailer.SendHTMLEmail error sending email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSMTPSendEmail(err, m.Client.Host)
	}
	return nil
}
