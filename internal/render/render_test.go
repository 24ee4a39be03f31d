package render_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"petcare-web/internal/domain/appointments"
	"petcare-web/internal/domain/reports"
	"petcare-web/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	rd, err := render.New(zap.NewNop())
	require.NoError(t, err)
	return rd
}

func view(target string, data any) render.View {
	return render.NewView(httptest.NewRequest(http.MethodGet, target, nil), "Test", data)
}

func TestMyReports_EmptyStateWithoutCards(t *testing.T) {
	rd := newRenderer(t)
	var buf bytes.Buffer

	require.NoError(t, rd.Execute(&buf, "my_reports", view("/my-reports", render.NewList[reports.Report](nil, nil, ""))))
	html := buf.String()

	assert.Contains(t, html, `id="emptyState"`)
	assert.NotContains(t, html, "report-card")
}

func TestMyReports_RegionErrorInsteadOfEmptyState(t *testing.T) {
	rd := newRenderer(t)
	var buf bytes.Buffer

	list := render.NewList[reports.Report](nil, errors.New("down"), "Failed to load your reports.")
	require.NoError(t, rd.Execute(&buf, "my_reports", view("/my-reports", list)))

	assert.Contains(t, buf.String(), "Failed to load your reports.")
	assert.NotContains(t, buf.String(), `id="emptyState"`)
}

func TestReports_CardsAndPager(t *testing.T) {
	rd := newRenderer(t)
	var buf bytes.Buffer

	items := []reports.Report{{ID: 7, AnimalType: "Dog", Status: reports.StatusOpen}}
	data := struct {
		Reports  render.List[reports.Report]
		Pager    render.Pager
		Status   reports.Status
		Statuses []reports.Status
	}{
		Reports:  render.NewList(items, nil, ""),
		Pager:    render.NewPager("/reports", nil, 0, 20, len(items)),
		Statuses: reports.Statuses,
	}
	require.NoError(t, rd.Execute(&buf, "reports", view("/reports", data)))
	html := buf.String()

	assert.Contains(t, html, "report-card")
	assert.Contains(t, html, `href="/reports/7"`)
	assert.NotContains(t, html, `id="emptyState"`)
	// una sola página: ambos botones deshabilitados
	assert.Contains(t, html, `<button class="btn-outline" disabled>Previous</button>`)
	assert.Contains(t, html, `<button class="btn-outline" disabled>Next</button>`)
}

func TestReportEdit_LockedDisablesForm(t *testing.T) {
	rd := newRenderer(t)
	var buf bytes.Buffer

	data := struct {
		Report     reports.Report
		Images     render.List[reports.Image]
		Locked     bool
		ImageCount int
		CanUpload  bool
		MaxImages  int
	}{
		Report:    reports.Report{ID: 3, Status: reports.StatusClosed},
		Images:    render.NewList[reports.Image](nil, nil, ""),
		Locked:    true,
		MaxImages: 3,
	}
	require.NoError(t, rd.Execute(&buf, "report_edit", view("/my-reports/3/edit", data)))
	html := buf.String()

	assert.Contains(t, html, `<fieldset disabled>`)
	assert.Contains(t, html, `id="updateBtn" disabled`)
	assert.NotContains(t, html, `action="/my-reports/3/images"`)
	assert.NotContains(t, html, `action="/my-reports/3/delete"`)
}

func TestSlotGrid_BookedSlotHasNoLink(t *testing.T) {
	rd := newRenderer(t)
	var buf bytes.Buffer

	slots := []appointments.AvailableSlot{
		{StartTime: "09:00", EndTime: "09:30", IsBooked: true},
		{StartTime: "10:00", EndTime: "10:30"},
	}
	b := appointments.Booking{BookingID: 4, ClinicName: "Paws", Status: appointments.BookingConfirmed}
	data := struct {
		Booking appointments.Booking
		Date    string
		Slots   render.List[appointments.SlotView]
		Chosen  *appointments.AvailableSlot
		Action  string
		Back    string
	}{
		Booking: b,
		Date:    "2025-01-06",
		Slots:   render.NewList(appointments.SlotViews(slots, nil), nil, ""),
		Action:  "/my-appointments/4/reschedule",
		Back:    "/my-appointments",
	}
	require.NoError(t, rd.Execute(&buf, "reschedule", view("/my-appointments/4/reschedule", data)))
	html := buf.String()

	assert.Contains(t, html, `slot-booked`)
	// html/template escapa ":" dentro de la query
	assert.NotRegexp(t, `(?i)start=09%3a00`, html)
	assert.Regexp(t, `(?i)start=10%3a00`, html)
	assert.NotContains(t, html, "Confirm Reschedule")
}

func TestFlashMessagesFromQuery(t *testing.T) {
	rd := newRenderer(t)
	var buf bytes.Buffer

	require.NoError(t, rd.Execute(&buf, "forgot_password", view("/forgot-password?notice=Sent&error=Oops", nil)))
	assert.Contains(t, buf.String(), `<div class="alert alert-success" role="status">Sent</div>`)
	assert.Contains(t, buf.String(), `<div class="alert alert-error" role="alert">Oops</div>`)
}
