package handler

import (
	"net/http"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/middleware"
	"github.com/alimarchal/maharat-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type FilesHandler struct{ svc service.FileService }

func NewFilesHandler(svc service.FileService) *FilesHandler { return &FilesHandler{svc: svc} }

// Upload godoc
// @Summary Upload a file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Param folder formData string false "Folder"
// @Param type formData string false "Type"
// @Success 201 {object} dto.DataResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/files/upload [post]
func (h *FilesHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"file": "required"}))
		return
	}
	src, err := fh.Open()
	if err != nil {
		respondError(c, apierror.Storage("Failed to read upload", err))
		return
	}
	defer src.Close()

	in := service.UploadInput{
		Filename:   fh.Filename,
		Size:       fh.Size,
		Content:    src,
		Folder:     c.PostForm("folder"),
		UploadedBy: middleware.ActorID(c),
	}
	if t := c.PostForm("type"); t != "" {
		in.Type = &t
	}

	f, err := h.svc.Upload(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.DataResponse{Data: f, Message: "File uploaded successfully"})
}
