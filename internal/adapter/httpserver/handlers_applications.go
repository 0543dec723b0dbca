package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	apperrors "github.com/PWDEJOB/pwde-job-api/internal/platform/errors"
)

func (s *Server) registerApplicationRoutes() {
	s.echo.POST("/jobs/:id/apply", s.handleApply, s.requireAuth)
	s.echo.GET("/jobs/:id/applicants", s.handleListApplicants, s.requireAuth)
	s.echo.GET("/applications", s.handleListMyApplications, s.requireAuth)
	s.echo.PATCH("/applications/:id/status", s.handleSetStatus, s.requireAuth)
	s.echo.POST("/applications/:id/decline", s.handleDecline, s.requireAuth)
	s.echo.GET("/declined", s.handleListDeclined, s.requireAuth)
	s.echo.GET("/notifications", s.handleListNotifications, s.requireAuth)
}

type applicationResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	JobID           string          `json:"job_id"`
	Status          string          `json:"status"`
	ProfileSnapshot json.RawMessage `json:"profile_snapshot,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type declineResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	JobID      string    `json:"job_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	return applicationResponse{
		ID:              a.ID.String(),
		EmployeeID:      a.EmployeeID.String(),
		JobID:           a.JobID.String(),
		Status:          string(a.Status),
		ProfileSnapshot: a.ProfileSnapshot,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func toApplicationResponses(applications []domain.Application) []applicationResponse {
	responses := make([]applicationResponse, len(applications))
	for i := range applications {
		responses[i] = toApplicationResponse(&applications[i])
	}
	return responses
}

func (s *Server) handleApply(c echo.Context) error {
	employeeID, err := principalID(c)
	if err != nil {
		return err
	}

	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	application, err := s.app.Apply(c.Request().Context(), employeeID, jobID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, toApplicationResponse(application))
}

func (s *Server) handleListApplicants(c echo.Context) error {
	employerID, err := principalID(c)
	if err != nil {
		return err
	}

	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	applications, err := s.app.ListApplicants(c.Request().Context(), employerID, jobID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, toApplicationResponses(applications))
}

func (s *Server) handleListMyApplications(c echo.Context) error {
	employeeID, err := principalID(c)
	if err != nil {
		return err
	}

	applications, err := s.app.ListMyApplications(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, toApplicationResponses(applications))
}

func (s *Server) handleSetStatus(c echo.Context) error {
	employerID, err := principalID(c)
	if err != nil {
		return err
	}

	applicationID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	application, err := s.app.SetStatus(c.Request().Context(), employerID, applicationID, domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, toApplicationResponse(application))
}

func (s *Server) handleDecline(c echo.Context) error {
	employeeID, err := principalID(c)
	if err != nil {
		return err
	}

	applicationID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	decline, err := s.app.Decline(c.Request().Context(), employeeID, applicationID)
	if err != nil {
		return err
	}
	return writeJSON(c, http.StatusCreated, declineResponse{
		ID:         decline.ID.String(),
		EmployeeID: decline.EmployeeID.String(),
		JobID:      decline.JobID.String(),
		CreatedAt:  decline.CreatedAt,
	})
}

func (s *Server) handleListDeclined(c echo.Context) error {
	employeeID, err := principalID(c)
	if err != nil {
		return err
	}

	declines, err := s.app.ListDeclined(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}

	responses := make([]declineResponse, len(declines))
	for i, d := range declines {
		responses[i] = declineResponse{
			ID:         d.ID.String(),
			EmployeeID: d.EmployeeID.String(),
			JobID:      d.JobID.String(),
			CreatedAt:  d.CreatedAt,
		}
	}
	return writeJSON(c, http.StatusOK, responses)
}

func (s *Server) handleListNotifications(c echo.Context) error {
	receiverID, err := principalID(c)
	if err != nil {
		return err
	}

	notifications, err := s.app.ListNotifications(c.Request().Context(), receiverID)
	if err != nil {
		return err
	}

	responses := make([]notificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notificationResponse{
			ID:         n.ID.String(),
			Title:      n.Title,
			SenderID:   n.SenderID.String(),
			ReceiverID: n.ReceiverID.String(),
			Content:    n.Content,
			Category:   n.Category,
			CreatedAt:  n.CreatedAt,
		}
	}
	return writeJSON(c, http.StatusOK, responses)
}
