package services

import (
	"fmt"
	"strings"
	"sync"
	"tehnika_server/structs"
	"tehnika_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient *resend.Client
	clientOnce  = sync.Once{}
)

// EmailService sends operational emails. The only consumer right now is the
// storage reconciler, which mails an alert when queued object deletions keep
// failing.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ApiKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	clientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	if !es.cfg.Email.Enabled {
		es.logger.Debug("Email sending disabled, skipping", gecho.Field("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendStorageDeletionAlert mails the configured recipients about queued object
// deletions that have exceeded the retry threshold
func (es *EmailService) SendStorageDeletionAlert(deletions []tables.StorageDeletion) error {
	if len(deletions) == 0 {
		return nil
	}

	var rows strings.Builder
	for _, d := range deletions {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			d.ObjectKey, d.Attempts, d.LastError, d.CreatedAt.Format("2006-01-02 15:04"))
	}

	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 700px; margin: 0 auto; padding: 20px; }
				.header { background-color: #c0392b; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				table { width: 100%%; border-collapse: collapse; background-color: white; }
				th, td { padding: 8px; border-bottom: 1px solid #eee; text-align: left; word-break: break-all; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Storage cleanup needs attention</h1>
				</div>
				<div class="content">
					<p>The following object deletions have failed repeatedly and remain queued. The objects still exist in the bucket and may need manual removal.</p>
					<table>
						<tr><th>Object key</th><th>Attempts</th><th>Last error</th><th>Queued at</th></tr>
						%s
					</table>
				</div>
				<div class="footer">
					<p>%s storage reconciler</p>
				</div>
			</div>
		</body>
		</html>
	`, rows.String(), es.cfg.Server.AppName)

	subject := fmt.Sprintf("[%s] %d storage deletion(s) stuck in retry queue", es.cfg.Server.AppName, len(deletions))

	return es.SendEmail(es.cfg.Email.AlertTo, subject, emailBody)
}
