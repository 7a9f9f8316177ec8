package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/veresiye/backend/internal/application/adapter"
	"github.com/veresiye/backend/internal/domain/entity"
)

// ReminderService builds due-check reminder digests and enqueues them for
// delivery. One digest email lists every pending check inside the window.
type ReminderService struct {
	checkRepo adapter.CheckNoteRepository
	queue     adapter.EmailQueueRepository
}

// NewReminderService creates a new reminder service instance.
func NewReminderService(checkRepo adapter.CheckNoteRepository, queue adapter.EmailQueueRepository) *ReminderService {
	return &ReminderService{
		checkRepo: checkRepo,
		queue:     queue,
	}
}

// EnqueueDigest looks up pending checks due inside the window and queues a
// digest email to the operator. Nothing is queued when the window is empty.
func (s *ReminderService) EnqueueDigest(ctx context.Context, recipientEmail, recipientName string, overdueDays, upcomingDays int) error {
	now := time.Now()
	from := now.AddDate(0, 0, -overdueDays)
	to := now.AddDate(0, 0, upcomingDays)

	checks, err := s.checkRepo.FindPendingInWindow(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to load pending checks: %w", err)
	}
	if len(checks) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d check(s) due soon", len(checks))
	job := entity.NewEmailJob(
		recipientEmail,
		recipientName,
		subject,
		buildDigestHTML(checks, now),
		buildDigestText(checks, now),
	)

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return fmt.Errorf("failed to enqueue reminder digest: %w", err)
	}
	return nil
}

func buildDigestText(checks []*entity.CheckNoteWithCounterparty, now time.Time) string {
	var b strings.Builder
	b.WriteString("Pending checks and notes:\n\n")
	for _, c := range checks {
		b.WriteString(fmt.Sprintf("- %s | %s %s | %s | due %s%s\n",
			c.CounterpartyName,
			string(c.CheckNote.Direction),
			string(c.CheckNote.Kind),
			c.CheckNote.Amount.StringFixed(2),
			c.CheckNote.DueDate.Format("02.01.2006"),
			overdueSuffix(c.CheckNote.DueDate, now),
		))
	}
	return b.String()
}

func buildDigestHTML(checks []*entity.CheckNoteWithCounterparty, now time.Time) string {
	var b strings.Builder
	b.WriteString("<h2>Pending checks and notes</h2><ul>")
	for _, c := range checks {
		b.WriteString(fmt.Sprintf("<li><strong>%s</strong> &mdash; %s %s, %s, due %s%s</li>",
			c.CounterpartyName,
			string(c.CheckNote.Direction),
			string(c.CheckNote.Kind),
			c.CheckNote.Amount.StringFixed(2),
			c.CheckNote.DueDate.Format("02.01.2006"),
			overdueSuffix(c.CheckNote.DueDate, now),
		))
	}
	b.WriteString("</ul>")
	return b.String()
}

func overdueSuffix(dueDate, now time.Time) string {
	if dueDate.Before(now.Truncate(24 * time.Hour)) {
		return " (OVERDUE)"
	}
	return ""
}
