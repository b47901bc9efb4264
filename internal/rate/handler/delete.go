package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// DeleteRate godoc
// @Summary Delete exchange rate
// @Tags Rates
// @Param from path string true "Source currency"
// @Param to path string true "Target currency"
// @Success 204
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Security BearerAuth
// @Router /exchange_rates/{from}/{to} [delete]
func (h *Handler) DeleteRate(w http.ResponseWriter, r *http.Request) {
	from, to := chi.URLParam(r, "from"), chi.URLParam(r, "to")

	if err := h.service.Delete(r.Context(), from, to); err != nil {
		writeServiceError(w, err, "failed to delete rate", logrus.Fields{
			"handler": "DeleteRate", "from": from, "to": to,
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
