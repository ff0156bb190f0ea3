package handler

import (
	"net/http"

	"cicloharmony/internal/dto"
	"cicloharmony/internal/service"

	"github.com/gin-gonic/gin"
)

// WizardHandler exposes the public registration funnel. Sessions are
// identified by the opaque id returned from Start; no auth is involved.
type WizardHandler struct{ svc service.WizardService }

func NewWizardHandler(svc service.WizardService) *WizardHandler {
	return &WizardHandler{svc: svc}
}

// Start godoc
// @Summary Inicia una sesion de registro
// @Tags wizard
// @Accept json
// @Produce json
// @Param body body dto.StartWizardRequest true "Nivel y pais"
// @Success 201 {object} dto.StartWizardResponse
// @Failure 403 {object} apierror.APIError "Registro cerrado para el nivel"
// @Router /v1/wizard [post]
func (h *WizardHandler) Start(c *gin.Context) {
	var req dto.StartWizardRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Start(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *WizardHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) Step1(c *gin.Context) {
	var req dto.Step1Request
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SubmitStep1(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) Platform(c *gin.Context) {
	var req dto.PlatformRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SelectPlatform(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) PrimaryOrder(c *gin.Context) {
	var req dto.OrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SubmitPrimaryOrder(c.Request.Context(), c.Param("id"), req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) AdminOrder(c *gin.Context) {
	var req dto.OrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CompleteWithAdminOrder(c.Request.Context(), c.Param("id"), req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) Back(c *gin.Context) {
	resp, err := h.svc.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WizardHandler) Ticket(c *gin.Context) {
	resp, err := h.svc.Ticket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
