package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"toolrent-backend/internal/domain"
)

const dateLayout = "2006-01-02"

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ValidationError("invalid %s: %s", name, raw)
	}
	return id, nil
}

func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, domain.ValidationError("%s is required", name)
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.ValidationError("invalid %s: expected yyyy-mm-dd, got %s", name, raw)
	}
	return t, nil
}

func queryDateTime(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, domain.ValidationError("%s is required", name)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.ValidationError("invalid %s: expected RFC 3339, got %s", name, raw)
	}
	return t, nil
}

func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}
