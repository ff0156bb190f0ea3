package handler

import (
	"net/http"

	"cicloharmony/internal/apierror"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationsHandler struct{ svc service.NotificationService }

func NewNotificationsHandler(svc service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

func (h *NotificationsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar notificaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) Create(c *gin.Context) {
	var req dto.NotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *NotificationsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.NotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, svcErr := h.svc.Update(c.Request.Context(), id, req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder persists the drag-and-drop result: ids[i] gets order index i.
func (h *NotificationsHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Reorder(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
