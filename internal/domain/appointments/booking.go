package appointments

import (
	"net/url"
	"strings"
	"time"

	"petcare-web/internal/validate"
)

// SlotState es el estado de un slot visto por quien reserva.
//
//	available -> selected (local, sin red) -> booked (confirmado por backend)
//	selected  -> available (cancelar selección, sin red)
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotSelected  SlotState = "selected"
	SlotBooked    SlotState = "booked"
)

// Selection es el slot elegido, viaja en la URL (?start=&end=).
type Selection struct {
	Start string
	End   string
}

func ParseSelection(q url.Values) (Selection, bool) {
	s := Selection{Start: strings.TrimSpace(q.Get("start")), End: strings.TrimSpace(q.Get("end"))}
	return s, s.Start != "" && s.End != ""
}

func (s Selection) matches(slot AvailableSlot) bool {
	return slot.StartTime == s.Start && slot.EndTime == s.End
}

type SlotView struct {
	Slot  AvailableSlot
	State SlotState
}

// Bookable: el control "Book" sólo existe para slots libres.
func (v SlotView) Bookable() bool { return v.State == SlotAvailable }

// SlotViews aplica la selección sobre los slots del backend.
// Un slot reservado nunca queda seleccionado.
func SlotViews(slots []AvailableSlot, sel *Selection) []SlotView {
	out := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		v := SlotView{Slot: s, State: SlotAvailable}
		switch {
		case s.IsBooked:
			v.State = SlotBooked
		case sel != nil && sel.matches(s):
			v.State = SlotSelected
		}
		out = append(out, v)
	}
	return out
}

// Selected devuelve el slot en estado selected, si hay uno.
func Selected(views []SlotView) (AvailableSlot, bool) {
	for _, v := range views {
		if v.State == SlotSelected {
			return v.Slot, true
		}
	}
	return AvailableSlot{}, false
}

const dateLayout = "2006-01-02"

// DayOfWeek deriva "MONDAY".. "SUNDAY" de una fecha YYYY-MM-DD.
func DayOfWeek(date string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", validate.Errorf("Invalid date.")
	}
	return strings.ToUpper(t.Weekday().String()), nil
}

// ParseDate devuelve la fecha pedida o hoy si viene vacía / inválida.
func ParseDate(s string, now time.Time) string {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err == nil {
		return strings.TrimSpace(s)
	}
	return now.Format(dateLayout)
}
