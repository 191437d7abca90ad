package utils

import (
	"fab/config"
	"fab/models"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyNewFeedback fans a freshly created record out to the configured
// operator channels. Failures are logged, never surfaced to the submitter.
func NotifyNewFeedback(record *models.Feedback) {
	if config.AppConfig.NotifyEmail != "" && config.AppConfig.EmailSender != "" {
		if err := sendFeedbackEmail(record); err != nil {
			log.Printf("Failed to send feedback email for %s: %v", record.ID, err)
		}
	}
	if config.AppConfig.WebhookURL != "" {
		if err := postFeedbackWebhook(record); err != nil {
			log.Printf("Failed to post feedback webhook for %s: %v", record.ID, err)
		}
	}
}

func sendFeedbackEmail(record *models.Feedback) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword
	to := []string{config.AppConfig.NotifyEmail}

	subject := fmt.Sprintf("New %s feedback: %s", record.Type, record.Title)

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Feedback Bot <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", to[0])
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<h2>%s</h2>
				<p><b>Type:</b> %s &nbsp; <b>Priority:</b> %s &nbsp; <b>Tool:</b> %s</p>
				<p>%s</p>
				<p style="color: #999999;">id %s</p>
			</body>
		</html>
	`, record.Title, record.Type, record.Priority, record.Tool, record.Description, record.ID)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

func postFeedbackWebhook(record *models.Feedback) error {
	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post(config.AppConfig.WebhookURL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned %s", resp.Status())
	}
	return nil
}
