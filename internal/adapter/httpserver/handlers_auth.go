package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/PWDEJOB/pwde-job-api/internal/app"
	"github.com/PWDEJOB/pwde-job-api/internal/domain"
	apperrors "github.com/PWDEJOB/pwde-job-api/internal/platform/errors"
)

func (s *Server) registerAuthRoutes() {
	s.echo.POST("/signup/employee", s.handleSignupEmployee)
	s.echo.POST("/signup/employer", s.handleSignupEmployer)
	s.echo.POST("/login/employee", s.handleLoginEmployee)
	s.echo.POST("/login/employer", s.handleLoginEmployer)
	s.echo.POST("/logout", s.handleLogout, s.requireAuth)
	s.echo.GET("/preload", s.handlePreload, s.requireAuth)
	s.echo.GET("/profile", s.handleProfile, s.requireAuth)
}

type signupEmployeeRequest struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phone_number"`
	ShortBio      string `json:"short_bio"`
	Disability    string `json:"disability"`
	Skills        string `json:"skills"`
	ResumeURL     string `json:"resume_url"`
	ProfilePicURL string `json:"profile_pic_url"`
}

type signupEmployerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CompanyName  string `json:"company_name"`
	CompanyLevel string `json:"company_level"`
	WebsiteURL   string `json:"website_url"`
	CompanyType  string `json:"company_type"`
	Industry     string `json:"industry"`
	AdminName    string `json:"admin_name"`
	LogoURL      string `json:"logo_url"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Tags         string `json:"tags"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type employeeResponse struct {
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phone_number"`
	ShortBio      string    `json:"short_bio"`
	Disability    string    `json:"disability"`
	Skills        string    `json:"skills"`
	ResumeURL     string    `json:"resume_url"`
	ProfilePicURL string    `json:"profile_pic_url"`
	CreatedAt     time.Time `json:"created_at"`
}

type employerResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	CompanyName  string    `json:"company_name"`
	CompanyLevel string    `json:"company_level"`
	WebsiteURL   string    `json:"website_url"`
	CompanyType  string    `json:"company_type"`
	Industry     string    `json:"industry"`
	AdminName    string    `json:"admin_name"`
	LogoURL      string    `json:"logo_url"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Tags         string    `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		UserID:        e.UserID.String(),
		FullName:      e.FullName,
		Email:         e.Email,
		Address:       e.Address,
		PhoneNumber:   e.PhoneNumber,
		ShortBio:      e.ShortBio,
		Disability:    e.Disability,
		Skills:        e.Skills,
		ResumeURL:     e.ResumeURL,
		ProfilePicURL: e.ProfilePicURL,
		CreatedAt:     e.CreatedAt,
	}
}

func toEmployerResponse(e *domain.Employer) employerResponse {
	return employerResponse{
		UserID:       e.UserID.String(),
		Email:        e.Email,
		CompanyName:  e.CompanyName,
		CompanyLevel: e.CompanyLevel,
		WebsiteURL:   e.WebsiteURL,
		CompanyType:  e.CompanyType,
		Industry:     e.Industry,
		AdminName:    e.AdminName,
		LogoURL:      e.LogoURL,
		Description:  e.Description,
		Location:     e.Location,
		Tags:         e.Tags,
		CreatedAt:    e.CreatedAt,
	}
}

func (s *Server) handleSignupEmployee(c echo.Context) error {
	var req signupEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return apperrors.ValidationError("full_name, email and password are required")
	}

	employee, err := s.app.SignupEmployee(c.Request().Context(), app.SignupEmployeeInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Password:      req.Password,
		Address:       req.Address,
		PhoneNumber:   req.PhoneNumber,
		ShortBio:      req.ShortBio,
		Disability:    req.Disability,
		Skills:        req.Skills,
		ResumeURL:     req.ResumeURL,
		ProfilePicURL: req.ProfilePicURL,
	})
	if err != nil {
		return err
	}

	return writeJSON(c, http.StatusCreated, toEmployeeResponse(employee))
}

func (s *Server) handleSignupEmployer(c echo.Context) error {
	var req signupEmployerRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.CompanyName == "" {
		return apperrors.ValidationError("email, password and company_name are required")
	}

	employer, err := s.app.SignupEmployer(c.Request().Context(), app.SignupEmployerInput{
		Email:        req.Email,
		Password:     req.Password,
		CompanyName:  req.CompanyName,
		CompanyLevel: req.CompanyLevel,
		WebsiteURL:   req.WebsiteURL,
		CompanyType:  req.CompanyType,
		Industry:     req.Industry,
		AdminName:    req.AdminName,
		LogoURL:      req.LogoURL,
		Description:  req.Description,
		Location:     req.Location,
		Tags:         req.Tags,
	})
	if err != nil {
		return err
	}

	return writeJSON(c, http.StatusCreated, toEmployerResponse(employer))
}

func (s *Server) handleLoginEmployee(c echo.Context) error {
	return s.handleLogin(c, s.app.LoginEmployee)
}

func (s *Server) handleLoginEmployer(c echo.Context) error {
	return s.handleLogin(c, s.app.LoginEmployer)
}

func (s *Server) handleLogin(c echo.Context, login func(ctx context.Context, email, password string) (*app.Session, error)) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.ValidationError("email and password are required")
	}

	session, err := login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return writeJSON(c, http.StatusOK, map[string]string{
		"token":   session.Token,
		"user_id": session.UserID.String(),
		"role":    string(session.Role),
	})
}

func (s *Server) handleLogout(c echo.Context) error {
	token, ok := c.Get(contextKeyToken).(string)
	if !ok {
		return apperrors.InternalError("missing token in context", nil)
	}

	if err := s.app.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePreload(c echo.Context) error {
	id, err := principalID(c)
	if err != nil {
		return err
	}

	principal, err := s.app.ResolvePrincipal(c.Request().Context(), id)
	if err != nil {
		return err
	}

	response := map[string]any{"role": principal.Role}
	switch principal.Role {
	case domain.RoleEmployee:
		response["profile"] = toEmployeeResponse(principal.Employee)
	case domain.RoleEmployer:
		response["profile"] = toEmployerResponse(principal.Employer)
	}
	return writeJSON(c, http.StatusOK, response)
}

func (s *Server) handleProfile(c echo.Context) error {
	return s.handlePreload(c)
}

func writeJSON(c echo.Context, status int, body any) error {
	if err := c.JSON(status, body); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}
