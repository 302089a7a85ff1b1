package services

import "context"

// MailTemplate names a mail body known to the mail collaborator.
type MailTemplate string

const (
	MailTransporterApproved MailTemplate = "transporter_approved"
	MailTransporterRejected MailTemplate = "transporter_rejected"
)

// MailSender is the outbound mail collaborator. Sending is best-effort:
// callers log failures and never fail the triggering operation on them.
type MailSender interface {
	Send(ctx context.Context, template MailTemplate, recipient string, data map[string]string) error
}

// DocumentStore is the opaque blob collaborator for request and vehicle
// attachments. Attach returns a reference usable in later display calls.
type DocumentStore interface {
	Attach(ctx context.Context, ownerRef string, blob []byte, metadata map[string]string) (string, error)
}
