package handler

import (
	"fxconvert/internal/domain"
	"fxconvert/internal/pagination"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ListRates godoc
// @Summary List exchange rates
// @Description Rates ordered by id, optionally filtered by source and target currency.
// @Tags Rates
// @Produce json
// @Param from query string false "Source currency filter"
// @Param to query string false "Target currency filter"
// @Param page query int false "Page number, from 1" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} pagination.Page[domain.ExchangeRate]
// @Failure 400 {object} errorResponse
// @Router /exchange_rates [get]
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), pagination.DefaultPage)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	limit, err := intParam(q.Get("limit"), pagination.DefaultLimit)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}
	limit = min(limit, pagination.MaxLimit)

	filter := domain.RateFilter{FromCurrency: q.Get("from"), ToCurrency: q.Get("to")}
	rates, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, "ups, couldn't list rates this time", logrus.Fields{
			"handler": "ListRates", "from": filter.FromCurrency, "to": filter.ToCurrency,
		})
		return
	}

	res, err := pagination.Paginate(rates, page, limit)
	if err != nil {
		WriteError(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidPagination
	}
	return v, nil
}
