package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/middleware"
	"github.com/alimarchal/maharat-sub001/internal/query"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
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

	// Key the 422 error map by the JSON field name the client sent.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, &apierror.APIError{Message: "Invalid JSON", Error: err.Error()})
		return false
	}
	return validateRequest(c, req)
}

func validateRequest(c *gin.Context, req interface{}) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, err)
		return false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = fe.Tag()
	}
	c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
	return false
}

// fieldPath drops the root struct name: "CreateRFQRequest.items[0].quantity"
// becomes "items[0].quantity".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// respondError writes the classified response for err. Opaque failures are
// logged with the request id and answered with a fixed message.
func respondError(c *gin.Context, err error) {
	status, body := apierror.Body(err)
	if status >= http.StatusInternalServerError {
		log.Error().
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Err(err).
			Msg("request failed")
	}
	c.JSON(status, body)
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Record not found"))
		return uuid.Nil, false
	}
	return id, true
}

// parseQuery reads the list query contract keys.
func parseQuery(c *gin.Context, paging query.Paging) (query.Params, bool) {
	p, err := query.Parse(c.Request.URL.Query(), paging)
	if err != nil {
		respondError(c, err)
		return query.Params{}, false
	}
	return p, true
}
