package appointments

import "strconv"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// AvailableSlot es un slot concreto para una fecha (vista del que reserva).
type AvailableSlot struct {
	SlotID    int    `json:"slot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsBooked  bool   `json:"is_booked"`
}

// Slot es la definición recurrente que administra la clínica.
type Slot struct {
	ID          int    `json:"id"`
	ClinicID    int    `json:"clinic_id"`
	DayOfWeek   string `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsActive    bool   `json:"is_active"`
	HasBookings bool   `json:"has_bookings"`
}

// Toggleable: un slot con reservas no se activa/desactiva desde la UI.
func (s Slot) Toggleable() bool { return !s.HasBookings }

type Booking struct {
	BookingID  int           `json:"booking_id"`
	ClinicID   int           `json:"clinic_id"`
	ClinicName string        `json:"clinic_name"`
	StartTime  string        `json:"start_time"`
	EndTime    string        `json:"end_time"`
	Status     BookingStatus `json:"status"`
	OwnerName  string        `json:"owner_name"`
	OwnerEmail string        `json:"owner_email"`
}

// Actionable: sólo una reserva CONFIRMED se cancela o reprograma.
func (b Booking) Actionable() bool { return b.Status == BookingConfirmed }

type ClinicStats struct {
	TotalBookings int `json:"total_bookings"`
	Confirmed     int `json:"confirmed"`
	Cancelled     int `json:"cancelled"`
	Upcoming      int `json:"upcoming"`
}

type NewSlot struct {
	ClinicID  int    `json:"clinic_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type bookingRequest struct {
	ClinicID  int    `json:"clinic_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type rescheduleRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func idString(n int) string { return strconv.Itoa(n) }
