package handler

import (
	"errors"
	"net/http"

	"cicloharmony/internal/apierror"
	"cicloharmony/internal/repository"
	"cicloharmony/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError maps service-layer errors onto HTTP statuses. The
// fallback is a generic 500 so internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	if fields, ok := service.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return
	}
	switch {
	case errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("No encontrado"))
	case errors.Is(err, service.ErrQrNotConfigured):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrTierClosed),
		errors.Is(err, service.ErrPlatformNotAllowed):
		c.JSON(http.StatusForbidden, apierror.New(err.Error()))
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrSessionCompleted),
		errors.Is(err, service.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
