package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/veresiye/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
type EmailQueueModel struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	RecipientEmail string       `gorm:"type:varchar(255);not null"`
	RecipientName  string       `gorm:"type:varchar(255)"`
	Subject        string       `gorm:"type:varchar(500);not null"`
	HTMLBody       string       `gorm:"type:text;not null"`
	TextBody       string       `gorm:"type:text"`
	Status         string       `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts       int          `gorm:"not null;default:0"`
	LastError      string       `gorm:"type:text"`
	ProviderID     string       `gorm:"type:varchar(100)"`
	ScheduledAt    time.Time    `gorm:"not null;index"`
	SentAt         sql.NullTime `gorm:"type:timestamptz"`
	CreatedAt      time.Time    `gorm:"not null"`
	UpdatedAt      time.Time    `gorm:"not null"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	var sentAt *time.Time
	if m.SentAt.Valid {
		sentAt = &m.SentAt.Time
	}

	return &entity.EmailJob{
		ID:             m.ID,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		HTMLBody:       m.HTMLBody,
		TextBody:       m.TextBody,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		LastError:      m.LastError,
		ProviderID:     m.ProviderID,
		ScheduledAt:    m.ScheduledAt,
		SentAt:         sentAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	var sentAt sql.NullTime
	if job.SentAt != nil {
		sentAt = sql.NullTime{Time: *job.SentAt, Valid: true}
	}

	return &EmailQueueModel{
		ID:             job.ID,
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		HTMLBody:       job.HTMLBody,
		TextBody:       job.TextBody,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		LastError:      job.LastError,
		ProviderID:     job.ProviderID,
		ScheduledAt:    job.ScheduledAt,
		SentAt:         sentAt,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
	}
}
