package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/selovida/labelops/internal/store"
)

func parseTime(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

func parseDateOrZero(dateStr string) time.Time {
	t, err := parseTime(dateStr)
	if err != nil {
		return time.Time{}
	}
	return t
}

func urlParamID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func transactionFilterFromQuery(r *http.Request) store.TransactionFilter {
	q := r.URL.Query()
	return store.TransactionFilter{
		Type:      q.Get("type"),
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		Search:    q.Get("search"),
		StartDate: parseDateOrZero(q.Get("start_date")),
		EndDate:   parseDateOrZero(q.Get("end_date")),
	}
}
