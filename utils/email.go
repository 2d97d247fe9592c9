package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	smtpUsername  = os.Getenv("SMTP_USERNAME")
	smtpPassword  = os.Getenv("SMTP_PASSWORD")
	smtpFromName  = os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	frontendURL   = os.Getenv("FRONTEND_URL")
)

// sendEmail dials the SMTP server, upgrades to TLS and delivers one message.
// When SMTP is not configured the send is skipped so local setups keep working.
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	from := smtpFromEmail
	if smtpFromName != "" {
		from = fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// SendResetLink emails the password reset link for the given token
func SendResetLink(to, token string) error {
	base := frontendURL
	if base == "" {
		base = "http://localhost:5173"
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", base, token)

	body := fmt.Sprintf(
		"Hello,\n\nA password reset was requested for your account.\n\nReset it here: %s\n\nThe link expires in 15 minutes. If you did not request this, ignore this email.\n",
		link,
	)
	return sendEmail(to, "Password Reset Request", body)
}

// SendLowStockAlert emails a low-stock warning for an inventory item
func SendLowStockAlert(to, itemName, sku string, quantity, reorderLevel int) error {
	subject := fmt.Sprintf("Low stock: %s", itemName)
	body := fmt.Sprintf(
		"Item %s (SKU %s) is low on stock.\n\nCurrent quantity: %d\nReorder level: %d\n\nPlease restock soon.\n",
		itemName, sku, quantity, reorderLevel,
	)
	return sendEmail(to, subject, body)
}
