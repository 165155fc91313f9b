package services

import "jobmarket/internal/repositories"

type SummaryReport struct {
	UsersByRole       map[string]int `json:"users_by_role"`
	JobsByStatus      map[string]int `json:"jobs_by_status"`
	TotalApplications int            `json:"total_applications"`
}

type ReportService interface {
	Summary() (*SummaryReport, error)
}

type reportService struct {
	users        repositories.UserRepository
	jobs         repositories.JobRepository
	applications repositories.ApplicationRepository
}

func NewReportService(users repositories.UserRepository, jobs repositories.JobRepository, applications repositories.ApplicationRepository) ReportService {
	return &reportService{users: users, jobs: jobs, applications: applications}
}

func (s *reportService) Summary() (*SummaryReport, error) {
	usersByRole, err := s.users.CountByRole()
	if err != nil {
		return nil, err
	}
	jobsByStatus, err := s.jobs.CountByStatus()
	if err != nil {
		return nil, err
	}
	total, err := s.applications.Count()
	if err != nil {
		return nil, err
	}
	return &SummaryReport{
		UsersByRole:       usersByRole,
		JobsByStatus:      jobsByStatus,
		TotalApplications: total,
	}, nil
}
