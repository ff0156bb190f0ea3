package handler

import (
	"net/http"

	"cicloharmony/internal/apierror"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/service"

	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the admin configuration surface: feature flags,
// QR setting groups and country payment preferences.
type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) ListSystem(c *gin.Context) {
	resp, err := h.svc.ListSystemSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) UpsertSystem(c *gin.Context) {
	var req dto.SystemSettingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpsertSystemSetting(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SystemSettingResponse{Key: req.Key, Enabled: req.Enabled})
}

// SaveQrGroup godoc
// @Summary Guarda el grupo de QR de un nivel y plataforma
// @Tags settings
// @Accept json
// @Produce json
// @Param body body dto.QrGroupRequest true "QR del pagador y del administrador"
// @Success 200 {array} dto.QrSettingResponse
// @Security BearerAuth
// @Router /v1/admin/qr-settings [put]
func (h *SettingsHandler) SaveQrGroup(c *gin.Context) {
	var req dto.QrGroupRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveQrGroup(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) ListQr(c *gin.Context) {
	resp, err := h.svc.ListQrSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar QR"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) ListPreferences(c *gin.Context) {
	resp, err := h.svc.PreferencesByCountry(c.Request.Context(), c.Query("country"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar preferencias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SettingsHandler) UpsertPreference(c *gin.Context) {
	var req dto.PaymentPreferenceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpsertPreference(c.Request.Context(), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentPreferenceResponse{
		Country:       req.Country,
		PaymentMethod: req.PaymentMethod,
		Preferred:     req.Preferred,
	})
}
