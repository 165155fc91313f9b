package models

import "time"

const (
	ApplicationStatusPending   = "PENDING"
	ApplicationStatusReviewing = "REVIEWING"
	ApplicationStatusAccepted  = "ACCEPTED"
	ApplicationStatusRejected  = "REJECTED"
	ApplicationStatusWithdrawn = "WITHDRAWN"
)

type Application struct {
	ID            string     `json:"id"`
	JobID         string     `json:"job_id"`
	StudentID     string     `json:"student_id"`
	CoverLetter   *string    `json:"cover_letter,omitempty"`
	Status        string     `json:"status"`
	AppliedAt     time.Time  `json:"applied_at"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	ReviewerNotes *string    `json:"reviewer_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// joined display fields
	JobTitle        string `json:"job_title,omitempty"`
	JobLocation     string `json:"job_location,omitempty"`
	StudentUsername string `json:"student_username,omitempty"`
	StudentEmail    string `json:"student_email,omitempty"`
}

type CreateApplicationRequest struct {
	JobID       string  `json:"job_id" binding:"required"`
	CoverLetter *string `json:"cover_letter"`
}

type UpdateApplicationRequest struct {
	CoverLetter   *string `json:"cover_letter"`
	Status        *string `json:"status"`
	ReviewerNotes *string `json:"reviewer_notes"`
}

type ApplicationQuery struct {
	Status     string
	JobID      string
	StudentID  string
	EmployerID string
	Limit      int
	Offset     int
}
