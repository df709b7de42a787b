package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// SMTPTransport delivers over implicit TLS (port 465 style). There is no
// retry layer; the dispatcher's contract is at-most-once.
type SMTPTransport struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func (t *SMTPTransport) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	boundary := "=_churchapp_alt"
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", t.From) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary) +
			"\r\n" +
			"--" + boundary + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
			textBody + "\r\n" +
			"--" + boundary + "\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
			htmlBody + "\r\n" +
			"--" + boundary + "--\r\n",
	)

	addr := t.Host + ":" + t.Port
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: t.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", t.User, t.Pass, t.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(t.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
