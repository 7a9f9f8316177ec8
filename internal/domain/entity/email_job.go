package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the delivery state of a queued email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// maxEmailAttempts is how many delivery attempts are made before a job is
// marked permanently failed.
const maxEmailAttempts = 3

// EmailJob is a queued outbound email, processed by the reminder worker.
type EmailJob struct {
	ID             uuid.UUID
	RecipientEmail string
	RecipientName  string
	Subject        string
	HTMLBody       string
	TextBody       string
	Status         EmailStatus
	Attempts       int
	LastError      string
	ProviderID     string
	ScheduledAt    time.Time
	SentAt         *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewEmailJob creates a pending email job scheduled for immediate delivery.
func NewEmailJob(recipientEmail, recipientName, subject, htmlBody, textBody string) *EmailJob {
	now := time.Now().UTC()

	return &EmailJob{
		ID:             uuid.New(),
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		HTMLBody:       htmlBody,
		TextBody:       textBody,
		Status:         EmailStatusPending,
		ScheduledAt:    now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MarkProcessing transitions the job to processing.
func (j *EmailJob) MarkProcessing() {
	j.Status = EmailStatusProcessing
	j.UpdatedAt = time.Now().UTC()
}

// MarkSent records a successful delivery.
func (j *EmailJob) MarkSent(providerID string) {
	now := time.Now().UTC()
	j.Status = EmailStatusSent
	j.ProviderID = providerID
	j.SentAt = &now
	j.UpdatedAt = now
}

// MarkFailed records a delivery failure. Permanent failures and jobs that
// exhausted their attempts stay failed; otherwise the job is rescheduled
// with linear backoff.
func (j *EmailJob) MarkFailed(err error, permanent bool) {
	now := time.Now().UTC()
	j.Attempts++
	j.LastError = err.Error()
	j.UpdatedAt = now

	if permanent || j.Attempts >= maxEmailAttempts {
		j.Status = EmailStatusFailed
		return
	}

	j.Status = EmailStatusPending
	j.ScheduledAt = now.Add(time.Duration(j.Attempts) * time.Minute)
}
