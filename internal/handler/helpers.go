package handler

import (
	"errors"
	"net/http"
	"reflect"

	"estoquepos/internal/apierror"
	"estoquepos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
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

// respondErro maps domain errors onto HTTP status codes. Anything unknown
// becomes a 400 with the error message, matching the rest of the API.
func respondErro(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrNaoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicado):
		status = http.StatusConflict
	case errors.Is(err, service.ErrCaixaFechado),
		errors.Is(err, service.ErrCaixaJaAberto),
		errors.Is(err, service.ErrCaixaJaFechado),
		errors.Is(err, service.ErrOperacaoCancelada):
		status = http.StatusConflict
	case errors.Is(err, service.ErrCredenciaisInvalidas),
		errors.Is(err, service.ErrUsuarioInativo):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrPagamentoInsuficiente),
		errors.Is(err, service.ErrBonusInsuficiente),
		errors.Is(err, service.ErrEstoqueInsuficiente):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, apierror.New(err.Error()))
}
