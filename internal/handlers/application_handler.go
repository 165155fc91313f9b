package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobmarket/internal/authz"
	"jobmarket/internal/models"
	"jobmarket/internal/pdf"
	"jobmarket/internal/services"
)

type ApplicationHandler struct {
	applicationService services.ApplicationService
	pdfGenerator       pdf.Generator
}

func NewApplicationHandler(applicationService services.ApplicationService, pdfGenerator pdf.Generator) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService, pdfGenerator: pdfGenerator}
}

// @Summary      Apply for a job
// @Tags         Applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        application  body  models.CreateApplicationRequest  true  "Application data"
// @Success      201  {object}  models.Application
// @Failure      400  {object}  map[string]string
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req models.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	studentID, _ := currentUser(c)
	app, err := h.applicationService.Apply(studentID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	log.Printf("[application][create] studentID=%s jobID=%s", studentID, req.JobID)
	c.JSON(http.StatusCreated, gin.H{"application": app})
}

// @Summary      List applications
// @Description  Students see their own, employers see applications to their jobs, admins see all
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Application status"
// @Param        job_id  query  string  false  "Job"
// @Param        limit   query  int     false  "Page size"
// @Param        offset  query  int     false  "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	q := models.ApplicationQuery{
		Status: c.Query("status"),
		JobID:  c.Query("job_id"),
		Limit:  limit,
		Offset: offset,
	}

	// scope the query to the caller unless they are an admin
	actorID, role := currentUser(c)
	switch role {
	case authz.RoleStudent:
		q.StudentID = actorID
	case authz.RoleEmployer:
		q.EmployerID = actorID
	}

	apps, total, err := h.applicationService.List(q)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"total":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// @Summary      Get an application
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Application ID"
// @Success      200  {object}  models.Application
// @Failure      404  {object}  map[string]string
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	actorID, role := currentUser(c)
	app, err := h.applicationService.GetByID(c.Param("id"), actorID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

// @Summary      Update an application
// @Description  Students may edit their cover letter; status and notes are for the employer side
// @Tags         Applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id           path  string                           true  "Application ID"
// @Param        application  body  models.UpdateApplicationRequest  true  "Fields to change"
// @Success      200  {object}  models.Application
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /applications/{id} [put]
func (h *ApplicationHandler) Update(c *gin.Context) {
	var req models.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, role := currentUser(c)
	app, err := h.applicationService.Update(c.Param("id"), actorID, role, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}

// @Summary      Withdraw an application
// @Tags         Applications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Application ID"
// @Success      200  {object}  map[string]string
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *gin.Context) {
	actorID, role := currentUser(c)
	if err := h.applicationService.Delete(c.Param("id"), actorID, role); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted"})
}

// @Summary      Download an application summary PDF
// @Tags         Applications
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "Application ID"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /applications/{id}/pdf [get]
func (h *ApplicationHandler) DownloadPDF(c *gin.Context) {
	actorID, role := currentUser(c)
	app, err := h.applicationService.GetByID(c.Param("id"), actorID, role)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if app == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	path, err := h.pdfGenerator.GenerateApplicationSummary(app)
	if err != nil {
		log.Printf("[application][pdf] generate failed for %s: %v", app.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}
	c.FileAttachment(path, "application_"+app.ID+".pdf")
}
