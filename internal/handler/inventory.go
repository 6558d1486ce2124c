package handler

import (
	"net/http"

	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/middleware"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// InventoryHandler serves the stock-moving endpoints. Everything else on
// inventories and transfers goes through the uniform controller.
type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Create godoc
// @Summary Create an inventory row with its initial transaction
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body dto.CreateInventoryRequest true "Inventory"
// @Success 201 {object} dto.DataResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/inventories [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	inv := req.ToModel()
	if err := h.svc.Create(c.Request.Context(), inv, middleware.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Data: inv, Message: "Inventory created successfully"})
}

// Adjust godoc
// @Summary Apply a signed stock adjustment
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Inventory ID"
// @Param body body dto.AdjustInventoryRequest true "Adjustment"
// @Success 200 {object} dto.DataResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventories/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	inv, err := h.svc.Adjust(c.Request.Context(), id, req.Quantity, req.Notes, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: inv, Message: "Inventory adjusted successfully"})
}

// FinalizeTransfer godoc
// @Summary Move a transfer's stock between warehouses
// @Tags inventory
// @Produce json
// @Param id path string true "Transfer ID"
// @Success 200 {object} dto.DataResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/inventory-transfers/{id}/finalize [post]
func (h *InventoryHandler) FinalizeTransfer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.FinalizeTransfer(c.Request.Context(), id, middleware.ActorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: t, Message: "Inventory transfer finalized successfully"})
}
