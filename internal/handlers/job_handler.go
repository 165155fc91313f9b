package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobmarket/internal/models"
	"jobmarket/internal/services"
)

type JobHandler struct {
	jobService services.JobService
}

func NewJobHandler(jobService services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// @Summary      List published jobs
// @Description  Optional filters compose with AND; absent filters mean no constraint
// @Tags         Jobs
// @Produce      json
// @Param        status      query  string  false  "Job status (default PUBLISHED)"
// @Param        work_type   query  string  false  "Work type"
// @Param        employer_id query  string  false  "Employer"
// @Param        search      query  string  false  "Substring match on title/description"
// @Param        salary_min  query  number  false  "Minimum salary"
// @Param        salary_max  query  number  false  "Maximum salary"
// @Param        limit       query  int     false  "Page size"
// @Param        offset      query  int     false  "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	q := models.JobQuery{
		Status:     c.Query("status"),
		WorkType:   c.Query("work_type"),
		EmployerID: c.Query("employer_id"),
		Search:     c.Query("search"),
		Limit:      limit,
		Offset:     offset,
	}
	if v, err := strconv.ParseFloat(c.Query("salary_min"), 64); err == nil {
		q.SalaryMin = &v
	}
	if v, err := strconv.ParseFloat(c.Query("salary_max"), 64); err == nil {
		q.SalaryMax = &v
	}

	jobs, total, err := h.jobService.List(q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// @Summary      Get a job
// @Tags         Jobs
// @Produce      json
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  models.Job
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetByID(c *gin.Context) {
	job, err := h.jobService.Get(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// @Summary      Post a job
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        job  body  models.CreateJobRequest  true  "Job data"
// @Success      201  {object}  models.Job
// @Failure      400  {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employerID, _ := currentUser(c)
	job, err := h.jobService.Create(employerID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// @Summary      Update a job
// @Description  Sparse update through the same field-present-or-absent contract as user updates
// @Tags         Jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string                   true  "Job ID"
// @Param        job  body  models.UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  models.Job
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	var req models.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, role := currentUser(c)
	job, err := h.jobService.Update(c.Param("id"), actorID, role, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// @Summary      Delete a job
// @Tags         Jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Job ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	actorID, role := currentUser(c)
	if err := h.jobService.Delete(c.Param("id"), actorID, role); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

// @Summary      List my jobs
// @Tags         Jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /jobs/my [get]
func (h *JobHandler) My(c *gin.Context) {
	employerID, _ := currentUser(c)
	limit, offset := pagination(c)
	jobs, total, err := h.jobService.ListByEmployer(employerID, limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":   jobs,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
