package mailer

import (
	"bytes"
	"fmt"
	"text/template"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"
)

// SMTPClient sends templated mail through a plain SMTP relay (Mailtrap in
// development, the production relay otherwise).
type SMTPClient struct {
	fromEmail string
	addr      string
	port      int
	username  string
	password  string
	logger    *zap.SugaredLogger
}

func NewSMTPClient(fromEmail, addr, username, password string, port int, logger *zap.SugaredLogger) *SMTPClient {
	return &SMTPClient{
		fromEmail: fromEmail,
		addr:      addr,
		port:      port,
		username:  username,
		password:  password,
		logger:    logger,
	}
}

func (c *SMTPClient) Send(option *MailOption, data any) error {
	if option == nil {
		return fmt.Errorf("nil mail option received")
	}

	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+option.TemplateFile)
	if err != nil {
		return err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return err
	}

	from := option.FromEmail
	if from == "" {
		from = c.fromEmail
	}

	message := gomail.NewMessage()
	message.SetHeader("From", from)
	message.SetHeader("To", option.To...)
	if len(option.CC) > 0 {
		message.SetHeader("Cc", option.CC...)
	}
	if len(option.BCC) > 0 {
		message.SetHeader("Bcc", option.BCC...)
	}
	message.SetHeader("Subject", subject.String())
	message.SetBody("text/html", body.String())

	for _, file := range option.AttachFiles {
		message.Attach(file)
	}

	dialer := gomail.NewDialer(c.addr, c.port, c.username, c.password)

	if err := dialer.DialAndSend(message); err != nil {
		c.logger.Errorw("failed to send email", "to", option.To, "template", option.TemplateFile)
		return err
	}

	c.logger.Infow("email sent", "to", option.To, "template", option.TemplateFile)
	return nil
}
