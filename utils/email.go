package utils

import (
	"fmt"
	"net/smtp"

	"learnhub/config"
)

// SendWelcomeEmail greets a newly registered learner.
func SendWelcomeEmail(cfg *config.Config, email, name string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Welcome to LearnHub! Upload your first study material to generate a lesson and start earning XP.</p>",
		name)
	return sendMail(cfg, email, "Welcome to LearnHub", body)
}

// SendPasswordResetEmail sends a password reset token.
func SendPasswordResetEmail(cfg *config.Config, email, token string) error {
	body := fmt.Sprintf(
		"<p>Your password reset token is: <strong>%s</strong></p>"+
			"<p>It expires in one hour. If you did not request a reset, ignore this email.</p>",
		token)
	return sendMail(cfg, email, "LearnHub Password Reset", body)
}

// SendAnnouncementEmail delivers an admin broadcast to one recipient.
func SendAnnouncementEmail(cfg *config.Config, email, subject, message string) error {
	return sendMail(cfg, email, subject, fmt.Sprintf("<p>%s</p>", message))
}

func sendMail(cfg *config.Config, email, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Host)
	to := []string{email}
	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n"+
			"%s\r\n",
		email, cfg.SMTP.SenderName, cfg.SMTP.SenderEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)
	if err := smtp.SendMail(addr, auth, cfg.SMTP.SenderEmail, to, msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
