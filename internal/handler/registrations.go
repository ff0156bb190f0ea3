package handler

import (
	"net/http"

	"cicloharmony/internal/apierror"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/middleware"
	"cicloharmony/internal/model"
	"cicloharmony/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegistrationsHandler serves the back-office approval queue and its
// action history report.
type RegistrationsHandler struct{ svc service.QueueService }

func NewRegistrationsHandler(svc service.QueueService) *RegistrationsHandler {
	return &RegistrationsHandler{svc: svc}
}

// tierQuery reads the optional ?tier= filter. An empty value means both
// tiers; anything else must be a known tier.
func tierQuery(c *gin.Context) (model.Tier, bool) {
	raw := c.Query("tier")
	if raw == "" {
		return "", true
	}
	tier := model.Tier(raw)
	if !tier.Valid() {
		c.JSON(http.StatusBadRequest, apierror.New("tier invalido"))
		return "", false
	}
	return tier, true
}

// Pending godoc
// @Summary Lista de registros pendientes
// @Tags registrations
// @Produce json
// @Param tier query string false "Filtro por nivel (standard|plus)"
// @Success 200 {array} dto.RegistrationResponse
// @Security BearerAuth
// @Router /v1/admin/registrations/pending [get]
func (h *RegistrationsHandler) Pending(c *gin.Context) {
	tier, ok := tierQuery(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListPending(c.Request.Context(), tier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar registros"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RegistrationsHandler) Decide(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	var req dto.DecisionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	adminEmail := ""
	if claims != nil {
		adminEmail = claims.Email
	}

	resp, svcErr := h.svc.Decide(c.Request.Context(), id, adminEmail, req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *RegistrationsHandler) History(c *gin.Context) {
	tier, ok := tierQuery(c)
	if !ok {
		return
	}
	action := c.Query("action")
	if action != "" && action != model.ActionApproved && action != model.ActionDisapproved {
		c.JSON(http.StatusBadRequest, apierror.New("action invalido"))
		return
	}
	resp, err := h.svc.ListHistory(c.Request.Context(), tier, action)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar historial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteHistory returns a registration to the pending queue by removing
// its decision row.
func (h *RegistrationsHandler) DeleteHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id invalido"))
		return
	}
	if err := h.svc.DeleteHistory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
