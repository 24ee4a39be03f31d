package mutation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/validate"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func run(m Mutation) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	Handle(rec, httptest.NewRequest(http.MethodPost, "/x", nil), zap.NewNop(), m)
	return rec
}

func location(t *testing.T, rec *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	u, err := url.Parse(rec.Header().Get("Location"))
	assert.NoError(t, err)
	return u
}

func TestHandle_ValidationFailureSkipsCall(t *testing.T) {
	calls := 0
	rec := run(Mutation{
		Validate: func() error { return validate.Phone("12") },
		Call:     func(context.Context) error { calls++; return nil },
		Success:  "/my-reports",
		Failure:  "/reports/new",
	})

	assert.Equal(t, 0, calls)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	u := location(t, rec)
	assert.Equal(t, "/reports/new", u.Path)
	assert.Contains(t, u.Query().Get("error"), "Invalid phone number")
}

func TestHandle_ServerRejectionShowsServerMessage(t *testing.T) {
	rec := run(Mutation{
		Call: func(context.Context) error {
			return &httpclient.HTTPError{StatusCode: 409, Message: "Slot already booked"}
		},
		Success:  "/my-appointments",
		Failure:  "/clinics/3?date=2026-01-05",
		Fallback: "Booking failed.",
	})

	u := location(t, rec)
	assert.Equal(t, "/clinics/3", u.Path)
	assert.Equal(t, "2026-01-05", u.Query().Get("date"))
	assert.Equal(t, "Slot already booked", u.Query().Get("error"))
}

func TestHandle_SuccessRedirectsWithNotice(t *testing.T) {
	calls := 0
	rec := run(Mutation{
		Call:    func(context.Context) error { calls++; return nil },
		Success: "/my-reports",
		Failure: "/reports/new",
		Notice:  "Report submitted successfully.",
	})

	assert.Equal(t, 1, calls)
	u := location(t, rec)
	assert.Equal(t, "/my-reports", u.Path)
	assert.Equal(t, "Report submitted successfully.", u.Query().Get("notice"))
}

func TestHandle_RerenderKeepsFormOnFailure(t *testing.T) {
	var shown string
	rec := run(Mutation{
		Validate: func() error { return validate.Required(validate.Field{Name: "Name", Value: ""}) },
		Call:     func(context.Context) error { t.Fatal("call must not run"); return nil },
		Rerender: func(w http.ResponseWriter, msg string) {
			shown = msg
			w.WriteHeader(http.StatusUnprocessableEntity)
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Name is required.", shown)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Booking failed.", Message(&httpclient.HTTPError{StatusCode: 500}, "Booking failed."))
	assert.Equal(t, NetworkFailure, Message(fmt.Errorf("%w: dial", httpclient.ErrUnavailable), "x"))
	assert.Equal(t, GenericFailure, Message(errors.New("boom"), ""))
	assert.Equal(t, "", Message(nil, "x"))
}

func TestWithParam(t *testing.T) {
	assert.Equal(t, "/reports?error=bad+input&skip=20", WithParam("/reports?skip=20&error=old", "error", "bad input"))
}
