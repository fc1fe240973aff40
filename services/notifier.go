package services

import (
	"fmt"
	"log"

	"printstock/config"
	"printstock/models"

	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Notifier is the fire-and-forget notification emitter. Every emit
// persists a Notification row for the dashboard; when mail is enabled the
// users holding the target role are also emailed asynchronously. Core
// correctness never depends on delivery: failures are logged and dropped.
type Notifier struct {
	db *gorm.DB
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{db: db}
}

func (n *Notifier) Emit(title, message, severity, targetRole string) {
	if n == nil || n.db == nil {
		return
	}

	notification := models.Notification{
		Title:      title,
		Message:    message,
		Severity:   severity,
		TargetRole: targetRole,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		log.Println("notifier: failed to store notification:", err)
	}

	if config.MailEnabled {
		go n.sendEmail(title, message, targetRole)
	}
}

func (n *Notifier) sendEmail(title, message, targetRole string) {
	var users []models.User
	if err := n.db.Where("role = ? AND is_active = ?", targetRole, true).Find(&users).Error; err != nil {
		log.Println("notifier: failed to load recipients:", err)
		return
	}

	var toEmails []string
	for _, u := range users {
		if u.Email != "" {
			toEmails = append(toEmails, u.Email)
		}
	}
	if len(toEmails) == 0 {
		return
	}

	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>%s</h3>
				<p>%s</p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, title, message)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", "[printstock] "+title)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Println("notifier: failed to send email:", err)
	}
}
