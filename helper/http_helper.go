package helper

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"iniva-cms/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/rs/zerolog/log"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textError = `error`
	textOk    = `ok`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Status   string
	Message  string
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a helper whose validator reports fields by their JSON
// names with English messages.
func NewHTTPHelper() *HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		log.Warn().Err(err).Msg("register validator translations")
	}

	return &HTTPHelper{Validate: validate, Translator: trans}
}

// GetStatusCode maps a service error to its HTTP status.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var (
		validation   models.ErrorValidation
		reference    models.ErrorReference
		unauthorized models.ErrorUnauthorized
		forbidden    models.ErrorForbidden
		notFound     models.ErrorNotFound
		conflict     models.ErrorConflict
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &reference):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func codeType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return `validationError`
	case http.StatusUnprocessableEntity:
		return `referenceError`
	case http.StatusUnauthorized:
		return `unAuthorized`
	case http.StatusForbidden:
		return `forbidden`
	case http.StatusNotFound:
		return `notFound`
	case http.StatusConflict:
		return `conflict`
	}
	return `internalError`
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, status string, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, status, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, message string, data interface{}, code int, codeType string) error {
	res := u.SetResponse(c, textError, message, data, code, codeType)

	return u.SendResponse(res)
}

// SendServiceError converts an error returned by a service into a response.
// Internal failures are logged and reported without detail.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) error {
	status := u.GetStatusCode(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		return u.SendError(c, "internal server error", u.EmptyJsonMap(), status, codeType(status))
	}

	data := u.EmptyJsonMap()
	var validation models.ErrorValidation
	if errors.As(err, &validation) && len(validation.Fields) > 0 {
		data = map[string]interface{}{"fields": validation.Fields}
	}
	return u.SendError(c, err.Error(), data, status, codeType(status))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusBadRequest, `badRequest`)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) error {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         http.StatusBadRequest,
		"code_type":    "validationError",
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
	return nil
}

// BindJSON decodes the request body into req and validates it, writing the
// error response itself. It reports whether the handler may continue.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, "invalid request body", map[string]interface{}{"error": err.Error()})
		return false
	}
	if err := u.Validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			u.SendValidationError(c, verrs)
			return false
		}
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
		return false
	}
	return true
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusUnauthorized, `unAuthorized`)
}

// SendForbiddenError ...
// Send forbidden response to consumers.
func (u *HTTPHelper) SendForbiddenError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusForbidden, `forbidden`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) error {
	return u.SendError(c, message, data, http.StatusNotFound, `notFound`)
}

// SendTooManyRequests ...
func (u *HTTPHelper) SendTooManyRequests(c *gin.Context, message string) error {
	return u.SendError(c, message, u.EmptyJsonMap(), http.StatusTooManyRequests, `tooManyRequests`)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusOK, `success`)

	return u.SendResponse(res)
}

// SendCreated ...
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) error {
	res := u.SetResponse(c, textOk, message, data, http.StatusCreated, `created`)

	return u.SendResponse(res)
}

// SendResponse ...
// Send response
func (u *HTTPHelper) SendResponse(res ResponseHelper) error {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
	return nil
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}
