// Package service holds the collaborators the handlers call out to:
// the verification mailer, the AI suggester and background cleanup.
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer delivers the one-time verification code. Tests swap in a stub.
type Mailer interface {
	SendVerification(to, username, code string) error
}

// SMTPMailer sends mail through the configured SMTP relay.
type SMTPMailer struct{}

func (SMTPMailer) SendVerification(to, username, code string) error {
	from := viper.GetString("mail.sender_address")
	if to == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()

	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/html", fmt.Sprintf(
		"Hello %v,<br><br>your verification code is <b>%v</b>.<br><br>It expires in 10 minutes.",
		username, code))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
