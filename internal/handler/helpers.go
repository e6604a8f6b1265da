package handler

import (
	"errors"
	"net/http"

	"campuskart/internal/apierror"
	"campuskart/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
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

// bindQuery binds and validates query-string filters.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps typed engine errors onto HTTP statuses. Anything not in
// the taxonomy is a server fault: logged with detail, answered generically.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var oos *domain.OutOfStockError
	var it *domain.InvalidTransitionError
	var nf *domain.NotFoundError
	var ic *domain.InventoryInconsistencyError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(ve.Error()))
	case errors.As(err, &oos):
		c.JSON(http.StatusConflict, gin.H{
			"detail":       oos.Error(),
			"product_id":   oos.ProductID,
			"product_name": oos.ProductName,
			"requested":    oos.Requested,
			"available":    oos.Available,
		})
	case errors.As(err, &it):
		c.JSON(http.StatusConflict, apierror.New(it.Error()))
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, apierror.New(nf.Error()))
	case errors.As(err, &ic):
		log.Error().Err(err).Msg("inventory inconsistency")
		c.JSON(http.StatusInternalServerError, apierror.New("inventory ledger inconsistent, operation rolled back"))
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
