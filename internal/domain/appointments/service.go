package appointments

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/platform/resource"
)

type Service struct {
	client   *httpclient.Client
	slots    *resource.Resource[Slot]
	bookings *resource.Resource[Booking]
}

func NewService(c *httpclient.Client) *Service {
	return &Service{
		client:   c,
		slots:    resource.New[Slot](c, "appointments/slots"),
		bookings: resource.New[Booking](c, "appointments/bookings"),
	}
}

// Available lista los slots de una clínica para una fecha (token opcional).
func (s *Service) Available(ctx context.Context, token, clinicID, date string) ([]AvailableSlot, error) {
	return resource.Fetch[[]AvailableSlot](ctx, s.client, httpclient.Request{
		Path:  s.slots.Path(clinicID, "available"),
		Query: url.Values{"date": {date}},
		Token: token,
	})
}

// Book crea una reserva. Si el slot ya no está libre el backend la rechaza
// y el error trae su mensaje.
func (s *Service) Book(ctx context.Context, token string, clinicID int, start, end string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/appointments/bookings",
		Token:  token,
		JSON:   bookingRequest{ClinicID: clinicID, StartTime: start, EndTime: end},
	}, nil)
}

func (s *Service) Cancel(ctx context.Context, token, bookingID string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.bookings.Path(bookingID, "cancel"),
		Token:  token,
	}, nil)
}

// Reschedule es UNA llamada: el backend cancela el slot viejo y asigna el nuevo.
// No asumimos atomicidad del lado del cliente.
func (s *Service) Reschedule(ctx context.Context, token, bookingID, start, end string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.bookings.Path(bookingID, "reschedule"),
		Token:  token,
		JSON:   rescheduleRequest{StartTime: start, EndTime: end},
	}, nil)
}

func (s *Service) Mine(ctx context.Context, token string) ([]Booking, error) {
	return resource.Fetch[[]Booking](ctx, s.client, httpclient.Request{Path: "/appointments/my", Token: token})
}

func (s *Service) ClinicBookings(ctx context.Context, token, clinicID string) ([]Booking, error) {
	return resource.Fetch[[]Booking](ctx, s.client, httpclient.Request{
		Path:  "/appointments/clinic/" + url.PathEscape(clinicID),
		Token: token,
	})
}

func (s *Service) ClinicSlots(ctx context.Context, token, clinicID string) ([]Slot, error) {
	return resource.Fetch[[]Slot](ctx, s.client, httpclient.Request{Path: s.slots.Path("clinic", clinicID), Token: token})
}

func (s *Service) CreateSlot(ctx context.Context, token string, in NewSlot) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/appointments/slots",
		Token:  token,
		JSON:   in,
	}, nil)
}

func (s *Service) SetSlotActive(ctx context.Context, token, slotID string, active bool) error {
	_, err := s.slots.Patch(ctx, token, slotID, map[string]bool{"is_active": active})
	return err
}

func (s *Service) ClinicStats(ctx context.Context, token string) (ClinicStats, error) {
	return resource.Fetch[ClinicStats](ctx, s.client, httpclient.Request{Path: "/appointments/stats/clinic", Token: token})
}

// clinicIDNumber: el backend espera clinic_id numérico en el body.
func clinicIDNumber(id string) (int, bool) {
	n, err := strconv.Atoi(id)
	return n, err == nil && n > 0
}
