package models

import "time"

const (
	JobStatusDraft     = "DRAFT"
	JobStatusPublished = "PUBLISHED"
	JobStatusPaused    = "PAUSED"
	JobStatusClosed    = "CLOSED"
)

type Job struct {
	ID                  string     `json:"id"`
	EmployerID          string     `json:"employer_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        *string    `json:"requirements,omitempty"`
	Location            *string    `json:"location,omitempty"`
	SalaryMin           *float64   `json:"salary_min,omitempty"`
	SalaryMax           *float64   `json:"salary_max,omitempty"`
	Currency            string     `json:"currency"`
	WorkType            *string    `json:"work_type,omitempty"`
	Duration            *string    `json:"duration,omitempty"`
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	MaxApplications     *int       `json:"max_applications,omitempty"`
	Status              string     `json:"status"`
	ViewsCount          int        `json:"views_count"`
	ApplicationsCount   int        `json:"applications_count"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	// joined display field, present on list/detail reads
	EmployerUsername string `json:"employer_username,omitempty"`
}

type CreateJobRequest struct {
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description" binding:"required"`
	Requirements        *string    `json:"requirements"`
	Location            *string    `json:"location"`
	SalaryMin           *float64   `json:"salary_min"`
	SalaryMax           *float64   `json:"salary_max"`
	Currency            string     `json:"currency"`
	WorkType            *string    `json:"work_type"`
	Duration            *string    `json:"duration"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	MaxApplications     *int       `json:"max_applications"`
}

type UpdateJobRequest struct {
	Title               *string    `json:"title"`
	Description         *string    `json:"description"`
	Requirements        *string    `json:"requirements"`
	Location            *string    `json:"location"`
	SalaryMin           *float64   `json:"salary_min"`
	SalaryMax           *float64   `json:"salary_max"`
	WorkType            *string    `json:"work_type"`
	Duration            *string    `json:"duration"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	MaxApplications     *int       `json:"max_applications"`
	Status              *string    `json:"status"`
}

// JobQuery is the read-side filter set; zero values mean "no constraint".
type JobQuery struct {
	Status     string
	WorkType   string
	EmployerID string
	Search     string
	SalaryMin  *float64
	SalaryMax  *float64
	Limit      int
	Offset     int
}
