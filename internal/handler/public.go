package handler

import (
	"net/http"

	"cicloharmony/internal/apierror"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated read surface of the landing
// page: published announcements and the registration availability flags.
type PublicHandler struct {
	notifications service.NotificationService
	settings      service.SettingsService
}

func NewPublicHandler(notifications service.NotificationService, settings service.SettingsService) *PublicHandler {
	return &PublicHandler{notifications: notifications, settings: settings}
}

// Notifications returns the published announcements in display order.
func (h *PublicHandler) Notifications(c *gin.Context) {
	resp, err := h.notifications.ListPublished(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar notificaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Flags reports which tiers and payment methods are currently open, so
// the landing page can hide closed entry points before a session starts.
func (h *PublicHandler) Flags(c *gin.Context) {
	ctx := c.Request.Context()
	keys := []string{
		model.SettingRegisterOpen,
		model.SettingRegister150Open,
		model.SettingBinanceEnabled,
		model.SettingNequiEnabled,
	}
	flags := make(map[string]bool, len(keys))
	for _, key := range keys {
		enabled, err := h.settings.IsEnabled(ctx, key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, apierror.New("Error al leer configuracion"))
			return
		}
		flags[key] = enabled
	}
	c.JSON(http.StatusOK, flags)
}

// ActiveQr resolves the authoritative QR configuration for one payment
// flow, identified by its qr type. 404 when no active row exists.
func (h *PublicHandler) ActiveQr(c *gin.Context) {
	qrType := model.QrType(c.Query("type"))
	switch qrType {
	case model.QrRegister, model.QrRegisterNequi, model.QrRegisterAdmin,
		model.QrRegister150, model.QrRegister150Nequi, model.QrRegister150Admin:
	default:
		c.JSON(http.StatusBadRequest, apierror.New("type invalido"))
		return
	}

	qr, err := h.settings.ActiveQr(c.Request.Context(), qrType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ActiveQrResponse{
		QrType:           string(qr.QrType),
		Code:             qr.Code,
		CountdownMinutes: qr.CountdownMinutes,
		PriceUSD:         qr.PriceUSD.StringFixed(2),
		PriceCOP:         qr.PriceCOP.StringFixed(0),
		ImageURL:         qr.ImageURL,
		ImageURL2:        qr.ImageURL2,
	})
}

// Preferences returns the payment methods preferred for a country, used
// to pre-order the method selector.
func (h *PublicHandler) Preferences(c *gin.Context) {
	resp, err := h.settings.PreferencesByCountry(c.Request.Context(), c.Query("country"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar preferencias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
