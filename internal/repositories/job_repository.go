package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"jobmarket/internal/apperrors"
	"jobmarket/internal/models"
	"jobmarket/internal/sqlbuild"
)

// JobColumns are the patchable job columns, in statement emission order.
var JobColumns = []string{
	"title", "description", "requirements", "location",
	"salary_min", "salary_max", "work_type", "duration",
	"start_date", "end_date", "application_deadline",
	"max_applications", "status",
}

type JobRepository interface {
	Create(job *models.Job) error
	GetByID(id string) (*models.Job, error)
	Filter(q models.JobQuery) ([]*models.Job, int, error)
	ListByEmployer(employerID string, limit, offset int) ([]*models.Job, int, error)
	Update(id string, patch *sqlbuild.Patch) (*models.Job, error)
	Delete(id string) error
	IncrementViews(id string) error
	RecountApplications(jobID string) error
	CountByStatus() (map[string]int, error)
}

type jobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) JobRepository {
	return &jobRepository{DB: db}
}

const jobSelectColumns = `
	j.id, j.employer_id, j.title, j.description, j.requirements, j.location,
	j.salary_min, j.salary_max, j.currency, j.work_type, j.duration,
	j.start_date, j.end_date, j.application_deadline, j.max_applications,
	j.status, j.views_count, j.applications_count, j.created_at, j.updated_at,
	u.username`

const jobFromClause = ` FROM jobs j JOIN users u ON j.employer_id = u.id`

func (r *jobRepository) Create(job *models.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO jobs (
			id, employer_id, title, description, requirements, location,
			salary_min, salary_max, currency, work_type, duration,
			start_date, end_date, application_deadline, max_applications, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING views_count, applications_count, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		job.ID,
		job.EmployerID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Location,
		job.SalaryMin,
		job.SalaryMax,
		job.Currency,
		job.WorkType,
		job.Duration,
		job.StartDate,
		job.EndDate,
		job.ApplicationDeadline,
		job.MaxApplications,
		job.Status,
	).Scan(&job.ViewsCount, &job.ApplicationsCount, &job.CreatedAt, &job.UpdatedAt)
	return apperrors.WrapStorage(err)
}

func (r *jobRepository) GetByID(id string) (*models.Job, error) {
	q := `SELECT` + jobSelectColumns + jobFromClause + ` WHERE j.id = $1`
	j, err := r.scanJob(r.DB.QueryRow(q, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

// Filter composes the conjunctive predicate list from whichever query
// fields are present; every value is bound, including the search term.
func (r *jobRepository) Filter(q models.JobQuery) ([]*models.Job, int, error) {
	f := sqlbuild.NewFilter()
	if q.Status != "" {
		f.Equal("j.status", q.Status)
	}
	if q.WorkType != "" {
		f.Equal("j.work_type", q.WorkType)
	}
	if q.EmployerID != "" {
		f.Equal("j.employer_id", q.EmployerID)
	}
	if q.Search != "" {
		f.Search(q.Search, "j.title", "j.description")
	}
	if q.SalaryMin != nil {
		f.AtLeast("j.salary_min", *q.SalaryMin)
	}
	if q.SalaryMax != nil {
		f.AtMost("j.salary_max", *q.SalaryMax)
	}

	query := `SELECT` + jobSelectColumns + jobFromClause + f.Where() +
		` ORDER BY j.created_at DESC` + sqlLimitOffset(f.NextArg())
	args := append(f.Args(), q.Limit, q.Offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	var res []*models.Job
	for rows.Next() {
		j, err := r.scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}

	var total int
	countQuery := `SELECT COUNT(*)` + jobFromClause + f.Where()
	if err := r.DB.QueryRow(countQuery, f.Args()...).Scan(&total); err != nil {
		return nil, 0, apperrors.WrapStorage(err)
	}
	return res, total, nil
}

func (r *jobRepository) ListByEmployer(employerID string, limit, offset int) ([]*models.Job, int, error) {
	return r.Filter(models.JobQuery{EmployerID: employerID, Limit: limit, Offset: offset})
}

func (r *jobRepository) Update(id string, patch *sqlbuild.Patch) (*models.Job, error) {
	assignments, args, err := patch.Assignments(1)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE jobs j SET %s, updated_at=CURRENT_TIMESTAMP FROM users u WHERE j.id=$%d AND u.id = j.employer_id RETURNING%s`,
		assignments, len(args), jobSelectColumns,
	)
	j, err := r.scanJob(r.DB.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

func (r *jobRepository) Delete(id string) error {
	_, err := r.DB.Exec(`DELETE FROM jobs WHERE id=$1`, id)
	return apperrors.WrapStorage(err)
}

func (r *jobRepository) IncrementViews(id string) error {
	_, err := r.DB.Exec(`UPDATE jobs SET views_count = views_count + 1 WHERE id=$1`, id)
	return apperrors.WrapStorage(err)
}

// RecountApplications derives the counter from the applications table
// instead of incrementing, so deletes stay consistent.
func (r *jobRepository) RecountApplications(jobID string) error {
	const q = `
		UPDATE jobs
		SET applications_count = (
			SELECT COUNT(*) FROM applications WHERE job_id = $1
		)
		WHERE id = $1
	`
	_, err := r.DB.Exec(q, jobID)
	return apperrors.WrapStorage(err)
}

func (r *jobRepository) CountByStatus() (map[string]int, error) {
	rows, err := r.DB.Query(`SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, apperrors.WrapStorage(err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperrors.WrapStorage(err)
		}
		counts[status] = n
	}
	return counts, apperrors.WrapStorage(rows.Err())
}

func (r *jobRepository) scanJob(row rowScanner) (*models.Job, error) {
	j := &models.Job{}
	var (
		requirements sql.NullString
		location     sql.NullString
		salaryMin    sql.NullFloat64
		salaryMax    sql.NullFloat64
		workType     sql.NullString
		duration     sql.NullString
		startDate    sql.NullTime
		endDate      sql.NullTime
		deadline     sql.NullTime
		maxApps      sql.NullInt64
	)
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Description, &requirements, &location,
		&salaryMin, &salaryMax, &j.Currency, &workType, &duration,
		&startDate, &endDate, &deadline, &maxApps,
		&j.Status, &j.ViewsCount, &j.ApplicationsCount, &j.CreatedAt, &j.UpdatedAt,
		&j.EmployerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, apperrors.WrapStorage(err)
	}
	if requirements.Valid {
		s := requirements.String
		j.Requirements = &s
	}
	if location.Valid {
		s := location.String
		j.Location = &s
	}
	if salaryMin.Valid {
		v := salaryMin.Float64
		j.SalaryMin = &v
	}
	if salaryMax.Valid {
		v := salaryMax.Float64
		j.SalaryMax = &v
	}
	if workType.Valid {
		s := workType.String
		j.WorkType = &s
	}
	if duration.Valid {
		s := duration.String
		j.Duration = &s
	}
	if startDate.Valid {
		t := startDate.Time
		j.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		j.EndDate = &t
	}
	if deadline.Valid {
		t := deadline.Time
		j.ApplicationDeadline = &t
	}
	if maxApps.Valid {
		v := int(maxApps.Int64)
		j.MaxApplications = &v
	}
	return j, nil
}
