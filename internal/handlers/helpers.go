package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"jobmarket/internal/apperrors"
)

func getStringFromCtx(c *gin.Context, key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func currentUser(c *gin.Context) (userID, role string) {
	return getStringFromCtx(c, "user_id"), getStringFromCtx(c, "role")
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = 10
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// writeServiceError maps core errors to HTTP responses in one place so
// handlers stay thin.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAccountLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is locked. Please try again later."})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, apperrors.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrNoFieldsToUpdate),
		errors.Is(err, apperrors.ErrJobNotOpen),
		errors.Is(err, apperrors.ErrDeadlinePassed),
		errors.Is(err, apperrors.ErrJobFull),
		errors.Is(err, apperrors.ErrAlreadyApplied),
		errors.Is(err, apperrors.ErrResetTokenInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if constraint := apperrors.ConstraintName(err); constraint != "" {
			c.JSON(http.StatusConflict, gin.H{"error": conflictMessage(constraint)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func conflictMessage(constraint string) string {
	switch {
	case strings.Contains(constraint, "email"):
		return "Email already in use"
	case strings.Contains(constraint, "username"):
		return "Username already in use"
	case strings.Contains(constraint, "job_id_student_id"):
		return "Already applied for this job"
	}
	return "Duplicate value"
}
