package handler

import (
	"net/http"

	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/middleware"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationSettingsHandler struct {
	svc service.NotificationSettingsService
}

func NewNotificationSettingsHandler(svc service.NotificationSettingsService) *NotificationSettingsHandler {
	return &NotificationSettingsHandler{svc: svc}
}

// targetUser is :id on admin routes and the caller otherwise.
func targetUser(c *gin.Context) (uuid.UUID, bool) {
	if c.Param("id") != "" {
		return parseID(c, "id")
	}
	return middleware.ActorID(c), true
}

// Get godoc
// @Summary Notification settings matrix (type key → channel key → enabled)
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /v1/notification-settings [get]
func (h *NotificationSettingsHandler) Get(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	m, err := h.svc.GetSettings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: m})
}

// Update godoc
// @Summary Bulk upsert notification settings
// @Tags notifications
// @Accept json
// @Produce json
// @Param body body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/notification-settings [put]
func (h *NotificationSettingsHandler) Update(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if err := h.svc.UpdateSettings(ctx, userID, req.Settings); err != nil {
		respondError(c, err)
		return
	}
	m, err := h.svc.GetSettings(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: m, Message: "Notification settings updated successfully"})
}

// SetupDefaults godoc
// @Summary Create missing default notification settings
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /v1/notification-settings/defaults [post]
func (h *NotificationSettingsHandler) SetupDefaults(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	created, err := h.svc.SetupDefaults(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{
		Data:    dto.SetupDefaultsResponse{Created: created},
		Message: "Default notification settings applied",
	})
}
