package mailer

import "embed"

//go:embed "templates"
var templateFS embed.FS

var (
	ContactEmailTemplate     = "contact_email.tmpl"
	ApplicationEmailTemplate = "application_email.tmpl"
)

type Client interface {
	Send(option *MailOption, data any) error
}

// MailOption addresses a single outbound message. TemplateFile names one of
// the embedded templates, which must define "subject" and "body" blocks.
type MailOption struct {
	FromEmail    string
	TemplateFile string
	To           []string
	CC           []string
	BCC          []string
	AttachFiles  []string
}
