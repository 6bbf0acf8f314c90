package v1

import (
	"errors"
	"net/http"
	"strconv"

	"job-catalog-api/internal/delivery/http/response"
	"job-catalog-api/internal/domain"
	"job-catalog-api/pkg/apperror"
	"job-catalog-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(group *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := group.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.GetDetails)
		jobs.POST("", handler.Create)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
	}
}

// JobRequest is the body of create and update. Salaries are pointers so a
// missing value is told apart from an explicit zero.
type JobRequest struct {
	Titulo      string   `json:"titulo"`
	Empresa     string   `json:"empresa"`
	Ubicacion   string   `json:"ubicacion"`
	Modalidad   string   `json:"modalidad" example:"Remote"`
	Tipo        string   `json:"tipo" example:"Full-Time"`
	SalarioMin  *float64 `json:"salario_min" binding:"required"`
	SalarioMax  *float64 `json:"salario_max" binding:"required"`
	Descripcion string   `json:"descripcion"`
	PublicadaEn string   `json:"publicada_en" binding:"required" example:"2024-01-15T00:00:00"`
}

// ToDomain converts the request into the domain input. Only the timestamp is
// parsed here; every other rule is checked by the usecase.
func (r *JobRequest) ToDomain() (domain.JobInput, error) {
	publishedAt, err := domain.ParseTimestamp(r.PublicadaEn)
	if err != nil {
		return domain.JobInput{}, apperror.Validation("Invalid job", []string{"publicada_en: must be an ISO-8601 date-time"})
	}
	return domain.JobInput{
		Title:        r.Titulo,
		Company:      r.Empresa,
		Location:     r.Ubicacion,
		WorkMode:     domain.WorkMode(r.Modalidad),
		ContractType: domain.ContractType(r.Tipo),
		SalaryMin:    *r.SalarioMin,
		SalaryMax:    *r.SalarioMax,
		Description:  r.Descripcion,
		PublishedAt:  publishedAt,
	}, nil
}

func bindJobInput(c *gin.Context) (domain.JobInput, error) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return domain.JobInput{}, apperror.Validation("Invalid job", validation.FormatValidationErrors(verrs))
		}
		return domain.JobInput{}, apperror.BadRequest("Invalid request body")
	}
	return req.ToDomain()
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}

// ListJobs godoc
// @Summary      List jobs
// @Description  List jobs, newest first, filtered by text, work mode and contract type
// @Tags         jobs
// @Produce      json
// @Param        q          query     string  false  "Substring of titulo or empresa"
// @Param        modalidad  query     string  false  "Work mode"  Enums(Remote, Hybrid, On-site)
// @Param        tipo       query     string  false  "Contract type"  Enums(Full-Time, Part-Time, Freelance, Internship)
// @Param        page       query     int     false  "Page number"  default(1)
// @Param        page_size  query     int     false  "Page size"  default(10)  maximum(100)
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(domain.DefaultPage)))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid page"))
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid page_size"))
		return
	}

	query := c.Query("q")
	if query == "" {
		query = c.Query("filter")
	}

	filter := domain.JobFilter{
		Query:        query,
		WorkMode:     domain.WorkMode(c.Query("modalidad")),
		ContractType: domain.ContractType(c.Query("tipo")),
		Page:         page,
		PageSize:     pageSize,
	}

	jobs, total, err := h.jobUC.ListJobs(c, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":      jobs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetJobDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJobDetails(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// CreateJob godoc
// @Summary      Create a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	in, err := bindJobInput(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.CreateJob(c, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// UpdateJob godoc
// @Summary      Replace a job
// @Description  Replace every field of an existing job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int         true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	in, err := bindJobInput(c)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.UpdateJob(c, id, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Permanently delete a job posting. Deleting an unknown id succeeds.
// @Tags         jobs
// @Param        id   path      int  true  "Job ID"
// @Success      204
// @Failure      400  {object}  response.Response
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.DeleteJob(c, id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
