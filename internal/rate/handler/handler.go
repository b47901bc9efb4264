package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeNotConvertible    = "NOT_CONVERTIBLE"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternal          = "INTERNAL_ERROR"
)

const maxBodyBytes = 1024

type RateService interface {
	Create(ctx context.Context, in rate.CreateRateInput) (domain.ExchangeRate, error)
	Update(ctx context.Context, from string, to string, value decimal.Decimal) (domain.ExchangeRate, error)
	Delete(ctx context.Context, from string, to string) error
	Find(ctx context.Context, from string, to string) (domain.ExchangeRate, error)
	List(ctx context.Context, filter domain.RateFilter) ([]domain.ExchangeRate, error)
	SupportedCodes() []string
}

type Converter interface {
	Convert(ctx context.Context, from string, to string, amount decimal.Decimal) (domain.Conversion, error)
}

type Handler struct {
	service   RateService
	converter Converter
	validate  *validator.Validate
}

func NewRateHandler(service RateService, converter Converter) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{service: service, converter: converter, validate: v}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func WriteError(w http.ResponseWriter, statusCode int, code string, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
		Code:  code,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// ErrorStatus maps a domain error to its HTTP status and error code.
// ok is false for errors that have no client-facing meaning.
func ErrorStatus(err error) (status int, code string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeValidation, true
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, CodeUnauthenticated, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, CodeForbidden, true
	case errors.Is(err, domain.ErrRateNotFound):
		return http.StatusNotFound, CodeNotFound, true
	case errors.Is(err, domain.ErrRateConflict):
		return http.StatusConflict, CodeConflict, true
	case errors.Is(err, domain.ErrNotConvertible):
		return http.StatusUnprocessableEntity, CodeNotConvertible, true
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, CodeRateLimitExceeded, true
	default:
		return http.StatusInternalServerError, CodeInternal, false
	}
}

// writeServiceError answers with the mapped domain error, or logs and hides anything unexpected.
func writeServiceError(w http.ResponseWriter, err error, internalMsg string, fields logrus.Fields) {
	status, code, ok := ErrorStatus(err)
	if ok {
		WriteError(w, status, code, err.Error())
		return
	}
	logrus.WithError(err).WithFields(fields).Error(internalMsg)
	WriteError(w, status, code, internalMsg)
}

// decodeBody reads a bounded JSON body into dst and runs struct validation on it.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domain.NewValidationError(describe(fieldErrs[0]))
		}
		return domain.NewValidationError("invalid request body")
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
