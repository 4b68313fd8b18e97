package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"

	domainuser "campusrent/internal/domain/user"
)

// MailNotifier delivers notifications as plain-text email over SMTP with TLS.
// The recipient address is resolved from the user record at send time.
type MailNotifier struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string

	Users  domainuser.Repository
	Logger *slog.Logger
}

func (n *MailNotifier) Notify(ctx context.Context, userID, subject, body string) error {
	if n.Users == nil {
		return fmt.Errorf("notify: user repository required")
	}
	recipient, err := n.Users.ByID(ctx, domainuser.ID(userID))
	if err != nil {
		return fmt.Errorf("notify: resolve recipient: %w", err)
	}
	if err := n.send(recipient.Email, subject, body); err != nil {
		return err
	}
	if n.Logger != nil {
		n.Logger.Debug("notification mail sent", "user_id", userID, "subject", subject)
	}
	return nil
}

func (n *MailNotifier) send(to, subject, body string) error {
	addr := n.Host + ":" + n.Port
	msg := fmt.Sprintf("From: %s\r\n", n.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"utf-8\"\r\n"
	msg += "\r\n" + body + "\r\n"

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: n.Host})
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", n.Username, n.Password, n.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(n.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}
