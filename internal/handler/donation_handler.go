package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratik0133/alumni-connect-api/internal/middleware"
	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/service"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/response"
)

// DonationHandler serves donation intake, history and aggregate stats.
type DonationHandler struct {
	service *service.DonationService
}

// NewDonationHandler creates a new handler.
func NewDonationHandler(svc *service.DonationService) *DonationHandler {
	return &DonationHandler{service: svc}
}

// Donate godoc
// @Summary Record a donation
// @Tags Donations
// @Accept json
// @Produce json
// @Param payload body models.DonationRequest true "Donation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /donate [post]
func (h *DonationHandler) Donate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.DonationRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid donation payload"))
		return
	}

	donation, err := h.service.Donate(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, donation)
}

// History godoc
// @Summary List the caller's donations
// @Tags Donations
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /donate [get]
func (h *DonationHandler) History(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	donations, err := h.service.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, donations, nil)
}

// Stats godoc
// @Summary Monthly donation totals
// @Description Aggregated donation totals grouped by month
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/donation-stats [get]
func (h *DonationHandler) Stats(c *gin.Context) {
	stats, cacheHit, err := h.service.MonthlyStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
