package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pratik0133/alumni-connect-api/internal/dto"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/service"
	"github.com/pratik0133/alumni-connect-api/pkg/config"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service. Successful logins
// set the session cookie in addition to returning the token in the body, so
// both browser-style and API-style clients work.
type AuthHandler struct {
	service *service.AuthService
	session config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, session config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, session: session}
}

// Register godoc
// @Summary Register a new alumni account
// @Description Create an account pending admin approval
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	info, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, info)
}

// Login godoc
// @Summary Authenticate user
// @Description Authenticate by email and password; sets the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie(h.session.CookieName, res.Token, int(h.session.Expiration/time.Second), "/", "", false, true)
	response.JSON(c, http.StatusOK, res, nil)
}

// Logout godoc
// @Summary End the current session
// @Description Clear the session cookie
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := claimsFromContext(c); claims != nil {
		h.service.RecordLogout(c.Request.Context(), claims, c.ClientIP(), c.GetHeader("User-Agent"))
	}

	c.SetCookie(h.session.CookieName, "", -1, "/", "", false, true)
	response.JSON(c, http.StatusOK, gin.H{"message": "logged out"}, nil)
}

// PendingApproval godoc
// @Summary Check approval state
// @Description Reports whether the caller's account has been approved
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /pending-approval [get]
func (h *AuthHandler) PendingApproval(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := dto.PendingApprovalResponse{
		IsApproved:  user.IsApproved || user.Role == models.RoleAdmin,
		Destination: models.DestinationPendingApproval,
	}
	if user.Role == models.RoleAdmin {
		res.Destination = models.DestinationAdminDashboard
	} else if user.IsApproved {
		res.Destination = models.DestinationAlumniDashboard
	}
	response.JSON(c, http.StatusOK, res, nil)
}
