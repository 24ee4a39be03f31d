package reports

import "strings"

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusRescued    Status = "RESCUED"
	StatusTreated    Status = "TREATED"
	StatusTransfered Status = "TRANSFERED"
	StatusClosed     Status = "CLOSED"
	StatusRejected   Status = "REJECTED"
)

// Statuses en el orden en que se muestran (filtros, stats, select).
var Statuses = []Status{
	StatusOpen,
	StatusInProgress,
	StatusRescued,
	StatusTreated,
	StatusTransfered,
	StatusClosed,
	StatusRejected,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, true
		}
	}
	return "", false
}

// Locked: un reporte cerrado o rechazado ya no se edita desde la UI.
func (s Status) Locked() bool {
	return s == StatusClosed || s == StatusRejected
}

type Report struct {
	ID             int     `json:"id"`
	AnimalType     string  `json:"animal_type"`
	Condition      string  `json:"condition"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	ContactPhone   *string `json:"contact_phone"`
	Status         Status  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	ReporterUserID *int    `json:"reporter_user_id,omitempty"`
}

func (r Report) Phone() string {
	if r.ContactPhone == nil {
		return ""
	}
	return *r.ContactPhone
}

type Image struct {
	ID        int    `json:"id"`
	ReportID  int    `json:"report_id"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"created_at"`
}

type Note struct {
	ID        int     `json:"id"`
	ReportID  int     `json:"report_id"`
	Note      string  `json:"note"`
	CreatedBy *string `json:"created_by"`
	CreatedAt string  `json:"created_at"`
}

type Message struct {
	ID           int    `json:"id"`
	ReportID     int    `json:"report_id"`
	Message      string `json:"message"`
	SenderUserID *int   `json:"sender_user_id"`
	SenderName   string `json:"sender_name"`
	IsRead       bool   `json:"is_read"`
	CreatedAt    string `json:"created_at"`
}

// Stats es el conteo por estado de /reports/stats/overview.
type Stats map[Status]int

type StatCount struct {
	Status Status
	Count  int
}

// Ordered devuelve todos los estados (0 si el backend no lo mandó).
func (s Stats) Ordered() []StatCount {
	out := make([]StatCount, 0, len(Statuses))
	for _, st := range Statuses {
		out = append(out, StatCount{Status: st, Count: s[st]})
	}
	return out
}
