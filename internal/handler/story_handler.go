package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pratik0133/alumni-connect-api/internal/models"
	"github.com/pratik0133/alumni-connect-api/internal/service"
	appErrors "github.com/pratik0133/alumni-connect-api/pkg/errors"
	"github.com/pratik0133/alumni-connect-api/pkg/response"
)

// StoryHandler serves story submission, listing and moderation.
type StoryHandler struct {
	service *service.StoryService
}

// NewStoryHandler creates a new handler.
func NewStoryHandler(svc *service.StoryService) *StoryHandler {
	return &StoryHandler{service: svc}
}

// Submit godoc
// @Summary Submit a story
// @Description Stories start unpublished and wait for moderation
// @Tags Stories
// @Accept json
// @Produce json
// @Param payload body models.StoryRequest true "Story payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /submit-story [post]
func (h *StoryHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.StoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid story payload"))
		return
	}

	story, err := h.service.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, story)
}

// Published godoc
// @Summary List published stories
// @Tags Stories
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stories [get]
func (h *StoryHandler) Published(c *gin.Context) {
	stories, err := h.service.Published(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stories, nil)
}

// Manage godoc
// @Summary List stories for moderation
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/manage-stories [get]
func (h *StoryHandler) Manage(c *gin.Context) {
	res, err := h.service.ManageList(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Publish godoc
// @Summary Publish a story
// @Tags Admin
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/publish-story/{id} [get]
func (h *StoryHandler) Publish(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	story, err := h.service.Publish(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, story, nil)
}

// Feature godoc
// @Summary Toggle a story's featured flag
// @Tags Admin
// @Produce json
// @Param id path string true "Story ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/feature-story/{id} [get]
func (h *StoryHandler) Feature(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	story, err := h.service.ToggleFeature(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, story, nil)
}
