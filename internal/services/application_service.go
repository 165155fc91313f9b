package services

import (
	"log"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/authz"
	"jobmarket/internal/models"
	"jobmarket/internal/repositories"
	"jobmarket/internal/sqlbuild"
)

type ApplicationService interface {
	Apply(studentID string, req *models.CreateApplicationRequest) (*models.Application, error)
	GetByID(id, actorID, actorRole string) (*models.Application, error)
	List(q models.ApplicationQuery) ([]*models.Application, int, error)
	Update(id, actorID, actorRole string, req *models.UpdateApplicationRequest) (*models.Application, error)
	Delete(id, actorID, actorRole string) error
	Count() (int, error)
}

type applicationService struct {
	repo    repositories.ApplicationRepository
	jobs    JobService
	jobRepo repositories.JobRepository
}

func NewApplicationService(repo repositories.ApplicationRepository, jobRepo repositories.JobRepository, jobs JobService) ApplicationService {
	return &applicationService{repo: repo, jobRepo: jobRepo, jobs: jobs}
}

func (s *applicationService) Apply(studentID string, req *models.CreateApplicationRequest) (*models.Application, error) {
	if err := s.jobs.CanApply(req.JobID, studentID); err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:       req.JobID,
		StudentID:   studentID,
		CoverLetter: req.CoverLetter,
	}
	if err := s.repo.Create(app); err != nil {
		return nil, err
	}
	s.recount(req.JobID)
	return app, nil
}

// GetByID admits the applying student, the employer who posted the job,
// and admins.
func (s *applicationService) GetByID(id, actorID, actorRole string) (*models.Application, error) {
	app, err := s.repo.GetByID(id)
	if err != nil || app == nil {
		return app, err
	}
	if err := s.authorize(app, actorID, actorRole); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) List(q models.ApplicationQuery) ([]*models.Application, int, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	return s.repo.Filter(q)
}

func (s *applicationService) Update(id, actorID, actorRole string, req *models.UpdateApplicationRequest) (*models.Application, error) {
	app, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperrors.ErrNotFound
	}
	if err := s.authorize(app, actorID, actorRole); err != nil {
		return nil, err
	}

	// students may only touch their cover letter; review fields belong to
	// the employer side
	if actorRole == authz.RoleStudent && (req.Status != nil || req.ReviewerNotes != nil) {
		return nil, apperrors.ErrForbidden
	}

	patch := sqlbuild.NewPatch(repositories.ApplicationColumns...)
	stampReviewed := false
	if req.CoverLetter != nil {
		patch.Set("cover_letter", *req.CoverLetter)
	}
	if req.Status != nil {
		patch.Set("status", *req.Status)
		if *req.Status != models.ApplicationStatusPending {
			stampReviewed = true
		}
	}
	if req.ReviewerNotes != nil {
		patch.Set("reviewer_notes", *req.ReviewerNotes)
	}
	return s.repo.Update(id, patch, stampReviewed)
}

func (s *applicationService) Delete(id, actorID, actorRole string) error {
	app, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if app == nil {
		return apperrors.ErrNotFound
	}
	if actorRole != authz.RoleAdmin && app.StudentID != actorID {
		return apperrors.ErrForbidden
	}

	jobID, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	s.recount(jobID)
	return nil
}

func (s *applicationService) Count() (int, error) {
	return s.repo.Count()
}

func (s *applicationService) authorize(app *models.Application, actorID, actorRole string) error {
	if actorRole == authz.RoleAdmin || app.StudentID == actorID {
		return nil
	}
	job, err := s.jobRepo.GetByID(app.JobID)
	if err != nil {
		return err
	}
	if job != nil && job.EmployerID == actorID {
		return nil
	}
	return apperrors.ErrForbidden
}

func (s *applicationService) recount(jobID string) {
	if err := s.jobRepo.RecountApplications(jobID); err != nil {
		log.Printf("[application] warning: recount for job %s failed: %v", jobID, err)
	}
}
