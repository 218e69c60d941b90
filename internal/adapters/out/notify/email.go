package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"

	"gopkg.in/gomail.v2"
)

// Mailer sends a prepared message. *gomail.Dialer satisfies it.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string
}

// EmailChannel mails the message to the recipient's address from the user directory.
// Recipients without an address are skipped.
type EmailChannel struct {
	mailer   Mailer
	contacts ports.UserDirectory
	from     string
}

func NewEmailChannel(cfg SMTPConfig, contacts ports.UserDirectory) *EmailChannel {
	return NewEmailChannelWithMailer(
		gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		contacts,
		fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From),
	)
}

func NewEmailChannelWithMailer(mailer Mailer, contacts ports.UserDirectory, from string) *EmailChannel {
	return &EmailChannel{mailer: mailer, contacts: contacts, from: from}
}

func (c *EmailChannel) Send(ctx context.Context, msg notice.Message) error {
	contact, err := c.contacts.Get(ctx, msg.Recipient)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	if strings.TrimSpace(contact.Email) == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetAddressHeader("To", contact.Email, contact.Name)
	m.SetHeader("Subject", msg.Title)
	m.SetBody("text/plain", msg.Body)
	m.AddAlternative("text/html", "<p>"+html.EscapeString(msg.Body)+"</p>")
	return c.mailer.DialAndSend(m)
}
