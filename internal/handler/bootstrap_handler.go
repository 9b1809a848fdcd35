package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratik0133/alumni-connect-api/internal/service"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/response"
)

// BootstrapHandler exposes on-demand database initialization. Failures are
// always reported as a structured error, never a panic.
type BootstrapHandler struct {
	service *service.BootstrapService
}

// NewBootstrapHandler creates a new handler.
func NewBootstrapHandler(svc *service.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{service: svc}
}

// InitDB godoc
// @Summary Initialize the database
// @Description Create the schema and seed the admin account, idempotently
// @Tags Bootstrap
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /init-db [get]
func (h *BootstrapHandler) InitDB(c *gin.Context) {
	res, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "database initialization failed"))
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}
