package handler

import (
	"fxconvert/internal/domain"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	FromCurrency   string          `json:"from_currency" example:"USD"`
	ToCurrency     string          `json:"to_currency" example:"TWD"`
	FromAmount     decimal.Decimal `json:"from_amount" swaggertype:"number" example:"100"`
	ToAmount       decimal.Decimal `json:"to_amount" swaggertype:"number" example:"3240"`
	Rate           decimal.Decimal `json:"rate" swaggertype:"number" example:"32.4"`
	ConversionPath string          `json:"conversion_path" example:"USD→EUR→TWD"`
	Path           []string        `json:"path" example:"USD,EUR,TWD"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Converts through a direct rate or, failing that, through at most one intermediate currency.
// @Tags Conversion
// @Produce json
// @Param from query string true "Source currency"
// @Param to query string true "Target currency"
// @Param amount query number true "Amount in the source currency"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to, rawAmount := q.Get("from"), q.Get("to"), q.Get("amount")

	if rawAmount == "" {
		WriteError(w, http.StatusBadRequest, CodeValidation, "amount is required")
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, "amount must be a number")
		return
	}
	if !domain.WithinMagnitude(amount) {
		WriteError(w, http.StatusBadRequest, CodeValidation, domain.ErrAmountOutOfRange.Error())
		return
	}

	conv, err := h.converter.Convert(r.Context(), from, to, amount)
	if err != nil {
		writeServiceError(w, err, "ups, couldn't convert this time", logrus.Fields{
			"handler": "Convert", "from": from, "to": to,
		})
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		FromCurrency:   conv.From,
		ToCurrency:     conv.To,
		FromAmount:     conv.Amount,
		ToAmount:       conv.Result,
		Rate:           conv.Rate,
		ConversionPath: conv.PathString(),
		Path:           conv.Path,
	})
}
