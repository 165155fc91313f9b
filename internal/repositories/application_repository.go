package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
	"jobmarket/internal/sqlbuild"
)

// ApplicationColumns are the patchable application columns.
var ApplicationColumns = []string{"cover_letter", "status", "reviewer_notes"}

type ApplicationRepository interface {
	Create(app *models.Application) error
	GetByID(id string) (*models.Application, error)
	Filter(q models.ApplicationQuery) ([]*models.Application, int, error)
	Exists(jobID, studentID string) (bool, error)
	Update(id string, patch *sqlbuild.Patch, stampReviewed bool) (*models.Application, error)
	// Delete removes the row and returns the job id for recounting.
	Delete(id string) (string, error)
	Count() (int, error)
}

type applicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) ApplicationRepository {
	return &applicationRepository{DB: db}
}

const applicationSelectColumns = `
	a.id, a.job_id, a.student_id, a.cover_letter, a.status, a.applied_at,
	a.reviewed_at, a.reviewer_notes, a.created_at, a.updated_at,
	j.title, COALESCE(j.location, ''), s.username, s.email`

const applicationFromClause = `
	FROM applications a
	JOIN jobs j ON a.job_id = j.id
	JOIN users s ON a.student_id = s.id`

func (r *applicationRepository) Create(app *models.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO applications (id, job_id, student_id, cover_letter)
		VALUES ($1,$2,$3,$4)
		RETURNING status, applied_at, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		app.ID,
		app.JobID,
		app.StudentID,
		app.CoverLetter,
	).Scan(&app.Status, &app.AppliedAt, &app.CreatedAt, &app.UpdatedAt)
	return apperrors.WrapStorage(err)
}

func (r *applicationRepository) GetByID(id string) (*models.Application, error) {
	q := `SELECT` + applicationSelectColumns + applicationFromClause + ` WHERE a.id = $1`
	a, err := r.scanApplication(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *applicationRepository) Filter(q models.ApplicationQuery) ([]*models.Application, int, error) {
	f := sqlbuild.NewFilter()
	if q.Status != "" {
		f.Equal("a.status", q.Status)
	}
	if q.JobID != "" {
		f.Equal("a.job_id", q.JobID)
	}
	if q.StudentID != "" {
		f.Equal("a.student_id", q.StudentID)
	}
	if q.EmployerID != "" {
		f.Equal("j.employer_id", q.EmployerID)
	}

	query := `SELECT` + applicationSelectColumns + applicationFromClause + f.Where() +
		` ORDER BY a.applied_at DESC` + sqlLimitOffset(f.NextArg())
	args := append(f.Args(), q.Limit, q.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	var res []*models.Application
	for rows.Next() {
		a, err := r.scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}

	var total int
	countQuery := `SELECT COUNT(*)` + applicationFromClause + f.Where()
	if err := r.DB.QueryRow(countQuery, f.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}
	return res, total, nil
}

func (r *applicationRepository) Exists(jobID, studentID string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id=$1 AND student_id=$2)`
	var exists bool
	err := r.DB.QueryRow(q, jobID, studentID).Scan(&exists)
	return exists, apperrors.WrapStorage(err)
}

func (r *applicationRepository) Update(id string, patch *sqlbuild.Patch, stampReviewed bool) (*models.Application, error) {
	assignments, args, err := patch.Assignments(1)
	if err != nil {
		return nil, err
	}
	if stampReviewed {
		assignments += ", reviewed_at=CURRENT_TIMESTAMP"
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE applications a SET %s, updated_at=CURRENT_TIMESTAMP
		 FROM jobs j, users s
		 WHERE a.id=$%d AND j.id = a.job_id AND s.id = a.student_id
		 RETURNING%s`,
		assignments, len(args), applicationSelectColumns,
	)
	a, err := r.scanApplication(r.DB.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (r *applicationRepository) Delete(id string) (string, error) {
	var jobID string
	err := r.DB.QueryRow(`DELETE FROM applications WHERE id=$1 RETURNING job_id`, id).Scan(&jobID)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrNotFound
	}
	return jobID, apperrors.WrapStorage(err)
}

func (r *applicationRepository) Count() (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM applications`).Scan(&n)
	return n, apperrors.WrapStorage(err)
}

func (r *applicationRepository) scanApplication(row rowScanner) (*models.Application, error) {
	a := &models.Application{}
	var (
		coverLetter   sql.NullString
		reviewedAt    sql.NullTime
		reviewerNotes sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.JobID, &a.StudentID, &coverLetter, &a.Status, &a.AppliedAt,
		&reviewedAt, &reviewerNotes, &a.CreatedAt, &a.UpdatedAt,
		&a.JobTitle, &a.JobLocation, &a.StudentUsername, &a.StudentEmail,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, apperrors.WrapStorage(err)
	}
	if coverLetter.Valid {
		s := coverLetter.String
		a.CoverLetter = &s
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		a.ReviewedAt = &t
	}
	if reviewerNotes.Valid {
		s := reviewerNotes.String
		a.ReviewerNotes = &s
	}
	return a, nil
}
