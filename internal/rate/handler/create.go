package handler

import (
	"fxconvert/internal/rate"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateRateRequest struct {
	FromCurrency string           `json:"from_currency" validate:"required" example:"USD"`
	ToCurrency   string           `json:"to_currency" validate:"required" example:"TWD"`
	Rate         *decimal.Decimal `json:"rate" validate:"required" swaggertype:"number" example:"32.5"`
	Source       string           `json:"source,omitempty" validate:"max=50" example:"Central Bank"`
}

// CreateRate godoc
// @Summary Create exchange rate
// @Description Store a new directional rate. Requires an admin credential.
// @Tags Rates
// @Accept json
// @Produce json
// @Param request body CreateRateRequest true "Rate to create"
// @Success 201 {object} domain.ExchangeRate
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Security BearerAuth
// @Router /exchange_rates [post]
func (h *Handler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req CreateRateRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), rate.CreateRateInput{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         *req.Rate,
		Source:       req.Source,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create rate", logrus.Fields{
			"handler": "CreateRate", "from": req.FromCurrency, "to": req.ToCurrency,
		})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
