package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type UpdateRateRequest struct {
	Rate *decimal.Decimal `json:"rate" validate:"required" swaggertype:"number" example:"33.1"`
}

// UpdateRate godoc
// @Summary Update exchange rate
// @Description Replace the rate of an existing pair. Requires an admin credential.
// @Tags Rates
// @Accept json
// @Produce json
// @Param from path string true "Source currency"
// @Param to path string true "Target currency"
// @Param request body UpdateRateRequest true "New rate"
// @Success 200 {object} domain.ExchangeRate
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /exchange_rates/{from}/{to} [put]
func (h *Handler) UpdateRate(w http.ResponseWriter, r *http.Request) {
	from, to := chi.URLParam(r, "from"), chi.URLParam(r, "to")

	var req UpdateRateRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), from, to, *req.Rate)
	if err != nil {
		writeServiceError(w, err, "failed to update rate", logrus.Fields{
			"handler": "UpdateRate", "from": from, "to": to,
		})
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
