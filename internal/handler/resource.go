package handler

import (
	"errors"
	"net/http"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/query"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

// BaseHandler serves list, show and delete for one resource.
type BaseHandler[T any] struct {
	name   string
	svc    service.CRUDService[T]
	paging query.Paging
}

func NewBaseHandler[T any](name string, svc service.CRUDService[T], paging query.Paging) *BaseHandler[T] {
	return &BaseHandler[T]{name: name, svc: svc, paging: paging}
}

// List handles GET /v1/<resource>.
func (h *BaseHandler[T]) List(c *gin.Context) {
	p, ok := parseQuery(c, h.paging)
	if !ok {
		return
	}
	page, err := h.svc.List(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(page))
}

// Show handles GET /v1/<resource>/:id.
func (h *BaseHandler[T]) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	p, ok := parseQuery(c, h.paging)
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), id, p.Includes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: m})
}

// Delete handles DELETE /v1/<resource>/:id.
func (h *BaseHandler[T]) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: nil, Message: h.name + " deleted successfully"})
}

// fail names the resource in unclassified not-found errors.
func (h *BaseHandler[T]) fail(c *gin.Context, err error) {
	var typed *apierror.Error
	if !errors.As(err, &typed) && apierror.Classify(err) == apierror.KindNotFound {
		err = apierror.NotFound(h.name + " not found")
	}
	respondError(c, err)
}

// ResourceHandler is the uniform controller: list, show, create, partial
// update and delete, driven by a create DTO C and an update DTO U.
type ResourceHandler[T any, C dto.Creator[T], U dto.Updater[T]] struct {
	*BaseHandler[T]
}

func NewResourceHandler[T any, C dto.Creator[T], U dto.Updater[T]](name string, svc service.CRUDService[T], paging query.Paging) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{BaseHandler: NewBaseHandler(name, svc, paging)}
}

// Create handles POST /v1/<resource>.
func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	var req C
	if !bindAndValidate(c, &req) {
		return
	}
	m := req.ToModel()
	if err := h.svc.Create(c.Request.Context(), m); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Data: m, Message: h.name + " created successfully"})
}

// Update handles PUT /v1/<resource>/:id. Absent fields keep their values.
func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req U
	if !bindAndValidate(c, &req) {
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, req.Apply)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DataResponse{Data: m, Message: h.name + " updated successfully"})
}

// Register mounts the five routes on g.
func (h *ResourceHandler[T, C, U]) Register(g gin.IRoutes) {
	g.GET("", h.List)
	g.GET("/:id", h.Show)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
