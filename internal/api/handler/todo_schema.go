package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createTodoRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// updateTodoRequest is a partial patch: nil fields are left untouched.
// There is intentionally no completedAt field — the completion timestamp is
// server-assigned, and a client-supplied value in the body is discarded on
// bind.
type updateTodoRequest struct {
	Text      *string `json:"text" validate:"omitempty,max=500"`
	Completed *bool   `json:"completed"`
}

// parseHistoryBound parses a startDate/endDate query parameter. A bare
// calendar date expands to the start of that day, or to the last nanosecond
// of it when endOfDay is set, so ?startDate=X&endDate=X covers the whole
// day X. RFC3339 timestamps are accepted as-is.
func parseHistoryBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse("2006-01-02", raw); err == nil {
		t = t.UTC()
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}

	return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD or RFC3339")
}
