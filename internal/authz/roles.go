package authz

const (
	RoleAdmin    = "admin"
	RoleEmployer = "employer"
	RoleStudent  = "student"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployer, RoleStudent:
		return true
	}
	return false
}

func CanManageJobs(role string) bool {
	return role == RoleEmployer || role == RoleAdmin
}

func CanReviewApplications(role string) bool {
	return role == RoleEmployer || role == RoleAdmin
}
