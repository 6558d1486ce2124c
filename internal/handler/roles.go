package handler

import (
	"net/http"

	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// RolesHandler serves subordinate lookups and grant synchronisation.
type RolesHandler struct{ svc service.RoleService }

func NewRolesHandler(svc service.RoleService) *RolesHandler { return &RolesHandler{svc: svc} }

// Subordinates godoc
// @Summary Users holding a role subordinate to one of the user's roles
// @Tags roles
// @Produce json
// @Success 200 {object} dto.DataResponse
// @Router /v1/me/subordinates [get]
func (h *RolesHandler) Subordinates(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	users, err := h.svc.SubordinateUsers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	resp := dto.DataResponse{Data: users}
	if len(users) == 0 {
		resp.Message = dto.NoRecordsMessage
	}
	c.JSON(http.StatusOK, resp)
}

// SyncSubordinates handles PUT /v1/roles/:id/subordinates.
func (h *RolesHandler) SyncSubordinates(c *gin.Context) {
	roleID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SyncSubordinates(c.Request.Context(), roleID, req.RoleIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: req.RoleIDs, Message: "Role subordinates updated successfully"})
}

// SyncPermissions handles PUT /v1/roles/:id/permissions.
func (h *RolesHandler) SyncPermissions(c *gin.Context) {
	roleID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PermissionIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SyncPermissions(c.Request.Context(), roleID, req.PermissionIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: req.PermissionIDs, Message: "Role permissions updated successfully"})
}

// SyncUserRoles handles PUT /v1/users/:id/roles.
func (h *RolesHandler) SyncUserRoles(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RoleIDsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SyncUserRoles(c.Request.Context(), userID, req.RoleIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: req.RoleIDs, Message: "User roles updated successfully"})
}
