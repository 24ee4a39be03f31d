package services

import (
	"sort"
	"strings"
)

// Provider es un proveedor del catálogo de servicios (datos de muestra,
// no hay backend para esto todavía).
type Provider struct {
	ID          int
	Name        string
	Service     string
	Location    string
	Rating      float64
	Reviews     int
	Price       int
	Description string
}

func (p Provider) ServiceName() string { return ServiceName(p.Service) }

type Stars struct {
	Full  int
	Half  bool
	Empty int
}

// Stars reparte el rating (0..5) en estrellas para el template.
func (p Provider) Stars() Stars {
	s := Stars{Full: int(p.Rating)}
	s.Half = p.Rating-float64(s.Full) > 0
	s.Empty = 5 - s.Full
	if s.Half {
		s.Empty--
	}
	return s
}

var serviceNames = map[string]string{
	"boarding": "Pet Boarding",
	"sitting":  "House Sitting",
	"walking":  "Dog Walking",
	"daycare":  "Pet Daycare",
	"grooming": "Pet Grooming",
	"taxi":     "Pet Taxi",
}

type Kind struct {
	ID   string
	Name string
}

// Kinds en el orden del selector.
func Kinds() []Kind {
	ids := []string{"boarding", "sitting", "walking", "daycare", "grooming", "taxi"}
	out := make([]Kind, 0, len(ids))
	for _, id := range ids {
		out = append(out, Kind{ID: id, Name: serviceNames[id]})
	}
	return out
}

func ServiceName(id string) string {
	if n, ok := serviceNames[id]; ok {
		return n
	}
	return id
}

var catalog = []Provider{
	{ID: 1, Name: "Amanda's Pet Care", Service: "boarding", Location: "Kandy, Central Province", Rating: 4.8, Reviews: 127, Price: 1500, Description: "Experienced pet sitter with 5+ years of caring for dogs and cats."},
	{ID: 2, Name: "Happy Paws Grooming", Service: "grooming", Location: "Kandy, Central Province", Rating: 4.9, Reviews: 89, Price: 2000, Description: "Professional grooming services for all breeds."},
	{ID: 3, Name: "Walk & Play", Service: "walking", Location: "Kandy, Central Province", Rating: 4.7, Reviews: 203, Price: 800, Description: "Daily dog walking and exercise services."},
	{ID: 4, Name: "Home Pet Boarding", Service: "boarding", Location: "Kandy, Central Province", Rating: 4.6, Reviews: 156, Price: 1800, Description: "Cage-free home boarding for your beloved pets."},
	{ID: 5, Name: "Pet Taxi Services", Service: "taxi", Location: "Kandy, Central Province", Rating: 4.5, Reviews: 67, Price: 1200, Description: "Safe and reliable pet transportation."},
	{ID: 6, Name: "Daycare Delight", Service: "daycare", Location: "Kandy, Central Province", Rating: 4.8, Reviews: 94, Price: 1300, Description: "Fun-filled daycare for your pets."},
}

const (
	SortReview = "review"
	SortPrice  = "price"
)

type Filter struct {
	Service  string
	Location string
	Sort     string
}

// Find filtra por servicio exacto y ubicación (substring, sin mayúsculas)
// y ordena: review => rating desc, price => precio asc.
func Find(f Filter) []Provider {
	out := make([]Provider, 0, len(catalog))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	for _, p := range catalog {
		if f.Service != "" && p.Service != f.Service {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(p.Location), loc) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortReview, "":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	return out
}

func ByID(id int) (Provider, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Provider{}, false
}
