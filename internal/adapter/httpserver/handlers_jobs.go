package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PWDEJOB/pwde-job-api/internal/app"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	apperrors "github.com/PWDEJOB/pwde-job-api/internal/platform/errors"
)

func (s *Server) registerJobRoutes() {
	s.echo.POST("/jobs", s.handleCreateJob, s.requireAuth)
	s.echo.GET("/jobs", s.handleListMyJobs, s.requireAuth)
	s.echo.GET("/jobs/:id", s.handleGetJob)
	s.echo.PUT("/jobs/:id", s.handleUpdateJob, s.requireAuth)
	s.echo.DELETE("/jobs/:id", s.handleDeleteJob, s.requireAuth)
	s.echo.GET("/recommendations", s.handleRecommendations, s.requireAuth)
}

type jobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	PWDFriendly bool     `json:"pwd_friendly"`
	Location    string   `json:"location"`
	JobType     string   `json:"job_type"`
	Industry    string   `json:"industry"`
	Experience  string   `json:"experience"`
	MinSalary   float64  `json:"min_salary"`
	MaxSalary   float64  `json:"max_salary"`
}

type jobResponse struct {
	ID          string    `json:"id"`
	EmployerID  string    `json:"employer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	PWDFriendly bool      `json:"pwd_friendly"`
	CompanyName string    `json:"company_name"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	Industry    string    `json:"industry"`
	Experience  string    `json:"experience"`
	MinSalary   float64   `json:"min_salary"`
	MaxSalary   float64   `json:"max_salary"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type recommendationResponse struct {
	Job           jobResponse `json:"job"`
	Score         float64     `json:"score"`
	MatchedSkills []string    `json:"matched_skills"`
}

func (r jobRequest) toInput() (app.JobInput, error) {
	if len(r.Skills) > domain.JobSkillSlots {
		return app.JobInput{}, apperrors.ValidationError("too many skills").
			WithField("max", domain.JobSkillSlots)
	}

	in := app.JobInput{
		Title:       r.Title,
		Description: r.Description,
		PWDFriendly: r.PWDFriendly,
		Location:    r.Location,
		JobType:     r.JobType,
		Industry:    r.Industry,
		Experience:  r.Experience,
		MinSalary:   r.MinSalary,
		MaxSalary:   r.MaxSalary,
	}
	copy(in.Skills[:], r.Skills)
	return in, nil
}

func toJobResponse(j *domain.Job) jobResponse {
	skills := make([]string, 0, domain.JobSkillSlots)
	for _, skill := range j.Skills {
		if skill != "" {
			skills = append(skills, skill)
		}
	}

	return jobResponse{
		ID:          j.ID.String(),
		EmployerID:  j.EmployerID.String(),
		Title:       j.Title,
		Description: j.Description,
		Skills:      skills,
		PWDFriendly: j.PWDFriendly,
		CompanyName: j.CompanyName,
		Location:    j.Location,
		JobType:     j.JobType,
		Industry:    j.Industry,
		Experience:  j.Experience,
		MinSalary:   j.MinSalary,
		MaxSalary:   j.MaxSalary,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func toJobResponses(jobs []domain.Job) []jobResponse {
	responses := make([]jobResponse, len(jobs))
	for i := range jobs {
		responses[i] = toJobResponse(&jobs[i])
	}
	return responses
}

func (s *Server) handleCreateJob(c echo.Context) error {
	employerID, err := principalID(c)
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Title == "" {
		return apperrors.ValidationError("title is required")
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	job, err := s.app.CreateJob(c.Request().Context(), employerID, in)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, toJobResponse(job))
}

func (s *Server) handleListMyJobs(c echo.Context) error {
	employerID, err := principalID(c)
	if err != nil {
		return err
	}

	jobs, err := s.app.ListMyJobs(c.Request().Context(), employerID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, toJobResponses(jobs))
}

func (s *Server) handleGetJob(c echo.Context) error {
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	job, err := s.app.GetJob(c.Request().Context(), jobID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, toJobResponse(job))
}

func (s *Server) handleUpdateJob(c echo.Context) error {
	employerID, err := principalID(c)
	if err != nil {
		return err
	}

	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Title == "" {
		return apperrors.ValidationError("title is required")
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	job, err := s.app.UpdateJob(c.Request().Context(), employerID, jobID, in)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, toJobResponse(job))
}

func (s *Server) handleDeleteJob(c echo.Context) error {
	employerID, err := principalID(c)
	if err != nil {
		return err
	}

	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := s.app.DeleteJob(c.Request().Context(), employerID, jobID); err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleRecommendations(c echo.Context) error {
	employeeID, err := principalID(c)
	if err != nil {
		return err
	}

	recommendations, err := s.app.Recommend(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}

	responses := make([]recommendationResponse, len(recommendations))
	for i, rec := range recommendations {
		responses[i] = recommendationResponse{
			Job:           toJobResponse(&rec.Job),
			Score:         rec.Score,
			MatchedSkills: rec.MatchedSkills,
		}
	}
	return writeJSON(c, http.StatusOK, responses)
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid UUID format").WithField(name, raw)
	}
	return id, nil
}
