package adapter

import (
	"context"

	"github.com/veresiye/backend/internal/domain/entity"
)

// EmailQueueRepository defines the interface for the outbound email queue.
type EmailQueueRepository interface {
	// Enqueue inserts a new pending email job.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs retrieves up to limit pending jobs whose scheduled time
	// has passed, oldest first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)

	// Update persists a job's status fields.
	Update(ctx context.Context, job *entity.EmailJob) error
}

// SendEmailInput is a single outbound email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult is the provider's acknowledgement.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender delivers emails through the configured provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}
