package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratik0133/alumni-connect-api/internal/middleware"
	"github.com/pratik0133/alumni-connect-api/internal/service"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/response"
)

// DashboardHandler serves the public home payload and the role dashboards.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Home godoc
// @Summary Public landing payload
// @Description Featured stories and upcoming events
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *DashboardHandler) Home(c *gin.Context) {
	res, err := h.service.Home(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Alumni godoc
// @Summary Alumni dashboard
// @Description The caller's activity summary and upcoming events
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /alumni-dashboard [get]
func (h *DashboardHandler) Alumni(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.Alumni(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Admin godoc
// @Summary Admin dashboard
// @Description Headline counts for the admin overview
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin-dashboard [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	res, cacheHit, err := h.service.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, res, nil, middleware.ExtractMeta(c))
}
