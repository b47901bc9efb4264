package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// GetRate godoc
// @Summary Get exchange rate
// @Tags Rates
// @Produce json
// @Param from path string true "Source currency"
// @Param to path string true "Target currency"
// @Success 200 {object} domain.ExchangeRate
// @Failure 404 {object} errorResponse
// @Router /exchange_rates/{from}/{to} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	from, to := chi.URLParam(r, "from"), chi.URLParam(r, "to")

	found, err := h.service.Find(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err, "ups, couldn't get rate this time", logrus.Fields{
			"handler": "GetRate", "from": from, "to": to,
		})
		return
	}

	writeJSON(w, http.StatusOK, found)
}
