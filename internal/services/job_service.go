package services

import (
	"log"
	"time"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/authz"
	"jobmarket/internal/models"
	"jobmarket/internal/repositories"
	"jobmarket/internal/sqlbuild"
)

type JobService interface {
	Create(employerID string, req *models.CreateJobRequest) (*models.Job, error)
	// Get returns the job and counts the view.
	Get(id string) (*models.Job, error)
	List(q models.JobQuery) ([]*models.Job, int, error)
	ListByEmployer(employerID string, limit, offset int) ([]*models.Job, int, error)
	Update(id, actorID, actorRole string, req *models.UpdateJobRequest) (*models.Job, error)
	Delete(id, actorID, actorRole string) error
	// CanApply checks the job-side guards for a new application.
	CanApply(jobID, studentID string) error
	CountByStatus() (map[string]int, error)
}

type jobService struct {
	jobs         repositories.JobRepository
	applications repositories.ApplicationRepository
	notify       NotifyService
}

func NewJobService(jobs repositories.JobRepository, applications repositories.ApplicationRepository, notify NotifyService) JobService {
	return &jobService{jobs: jobs, applications: applications, notify: notify}
}

func (s *jobService) Create(employerID string, req *models.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		EmployerID:          employerID,
		Title:               req.Title,
		Description:         req.Description,
		Requirements:        req.Requirements,
		Location:            req.Location,
		SalaryMin:           req.SalaryMin,
		SalaryMax:           req.SalaryMax,
		Currency:            req.Currency,
		WorkType:            req.WorkType,
		Duration:            req.Duration,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ApplicationDeadline: req.ApplicationDeadline,
		MaxApplications:     req.MaxApplications,
		Status:              models.JobStatusPublished,
	}
	if job.Currency == "" {
		job.Currency = "THB"
	}
	if err := s.jobs.Create(job); err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.JobPublished(job)
	}
	return job, nil
}

func (s *jobService) Get(id string) (*models.Job, error) {
	job, err := s.jobs.GetByID(id)
	if err != nil || job == nil {
		return job, err
	}
	if err := s.jobs.IncrementViews(id); err != nil {
		// the read already succeeded; a lost view count is not worth a 500
		log.Printf("[job][get] warning: increment views for %s failed: %v", id, err)
	} else {
		job.ViewsCount++
	}
	return job, nil
}

func (s *jobService) List(q models.JobQuery) ([]*models.Job, int, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Status == "" {
		q.Status = models.JobStatusPublished
	}
	return s.jobs.Filter(q)
}

func (s *jobService) ListByEmployer(employerID string, limit, offset int) ([]*models.Job, int, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.jobs.ListByEmployer(employerID, limit, offset)
}

func (s *jobService) Update(id, actorID, actorRole string, req *models.UpdateJobRequest) (*models.Job, error) {
	if err := s.requireOwner(id, actorID, actorRole); err != nil {
		return nil, err
	}
	patch := sqlbuild.NewPatch(repositories.JobColumns...)
	if req.Title != nil {
		patch.Set("title", *req.Title)
	}
	if req.Description != nil {
		patch.Set("description", *req.Description)
	}
	if req.Requirements != nil {
		patch.Set("requirements", *req.Requirements)
	}
	if req.Location != nil {
		patch.Set("location", *req.Location)
	}
	if req.SalaryMin != nil {
		patch.Set("salary_min", *req.SalaryMin)
	}
	if req.SalaryMax != nil {
		patch.Set("salary_max", *req.SalaryMax)
	}
	if req.WorkType != nil {
		patch.Set("work_type", *req.WorkType)
	}
	if req.Duration != nil {
		patch.Set("duration", *req.Duration)
	}
	if req.StartDate != nil {
		patch.Set("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		patch.Set("end_date", *req.EndDate)
	}
	if req.ApplicationDeadline != nil {
		patch.Set("application_deadline", *req.ApplicationDeadline)
	}
	if req.MaxApplications != nil {
		patch.Set("max_applications", *req.MaxApplications)
	}
	if req.Status != nil {
		patch.Set("status", *req.Status)
	}
	return s.jobs.Update(id, patch)
}

func (s *jobService) Delete(id, actorID, actorRole string) error {
	if err := s.requireOwner(id, actorID, actorRole); err != nil {
		return err
	}
	return s.jobs.Delete(id)
}

// requireOwner admits the posting employer and admins.
func (s *jobService) requireOwner(jobID, actorID, actorRole string) error {
	if actorRole == authz.RoleAdmin {
		return nil
	}
	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return apperrors.ErrNotFound
	}
	if job.EmployerID != actorID {
		return apperrors.ErrForbidden
	}
	return nil
}

func (s *jobService) CanApply(jobID, studentID string) error {
	job, err := s.jobs.GetByID(jobID)
	if err != nil {
		return err
	}
	if job == nil || job.Status != models.JobStatusPublished {
		return apperrors.ErrJobNotOpen
	}
	if job.ApplicationDeadline != nil && job.ApplicationDeadline.Before(time.Now()) {
		return apperrors.ErrDeadlinePassed
	}
	if job.MaxApplications != nil && job.ApplicationsCount >= *job.MaxApplications {
		return apperrors.ErrJobFull
	}
	exists, err := s.applications.Exists(jobID, studentID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrAlreadyApplied
	}
	return nil
}

func (s *jobService) CountByStatus() (map[string]int, error) {
	return s.jobs.CountByStatus()
}
