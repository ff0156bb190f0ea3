package handler

import (
	"errors"
	"net/http"

	"cicloharmony/internal/apierror"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/infra"

	"github.com/gin-gonic/gin"
)

// UploadsHandler receives admin file uploads (QR images, notification
// videos) and stores them on the local file store.
type UploadsHandler struct{ store *infra.FileStore }

func NewUploadsHandler(store *infra.FileStore) *UploadsHandler {
	return &UploadsHandler{store: store}
}

// Upload godoc
// @Summary Sube un archivo (imagen o video)
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Param kind query string true "Tipo de archivo" Enums(image, video)
// @Param file formData file true "Archivo"
// @Success 201 {object} dto.UploadResponse
// @Failure 413 {object} apierror.APIError "Archivo demasiado grande"
// @Security BearerAuth
// @Router /v1/admin/uploads [post]
func (h *UploadsHandler) Upload(c *gin.Context) {
	kind := c.Query("kind")
	if kind != infra.KindImage && kind != infra.KindVideo {
		c.JSON(http.StatusBadRequest, apierror.New("kind debe ser image o video"))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("archivo requerido"))
		return
	}

	name, size, err := h.store.Save(fh, kind)
	switch {
	case errors.Is(err, infra.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New(err.Error()))
		return
	case errors.Is(err, infra.ErrUnsupportedType):
		c.JSON(http.StatusUnsupportedMediaType, apierror.New(err.Error()))
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, apierror.New("Error al guardar el archivo"))
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		URL:      h.store.PublicURL(name),
		FileName: name,
		Size:     size,
		Kind:     kind,
	})
}
