package handler

import (
	"net/http"
	"path/filepath"

	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type RFQHandler struct{ svc service.RFQService }

func NewRFQHandler(svc service.RFQService) *RFQHandler { return &RFQHandler{svc: svc} }

// PDF godoc
// @Summary Download the RFQ as PDF
// @Tags procurement
// @Produce application/pdf
// @Param id path string true "RFQ ID"
// @Success 200 {file} file
// @Failure 404 {object} apierror.APIError
// @Router /v1/rfqs/{id}/pdf [get]
func (h *RFQHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	path, _, err := h.svc.Document(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// Send godoc
// @Summary Email the RFQ PDF to the supplier
// @Tags procurement
// @Produce json
// @Param id path string true "RFQ ID"
// @Success 202 {object} dto.DataResponse
// @Failure 422 {object} apierror.APIError
// @Router /v1/rfqs/{id}/send [post]
func (h *RFQHandler) Send(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Send(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.DataResponse{Data: nil, Message: "RFQ queued for sending"})
}
