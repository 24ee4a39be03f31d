package clinics

import (
	"strconv"
	"strings"
)

type Clinic struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	ProfilePicURL string  `json:"profile_pic_url"`
	IsActive      bool    `json:"is_active"`
	OwnerID       int     `json:"owner_id"`
	CreatedAt     string  `json:"created_at"`
}

func (c Clinic) IDString() string { return strconv.Itoa(c.ID) }

// HasLocation: (0,0) se toma como "sin pin".
func (c Clinic) HasLocation() bool { return c.Latitude != 0 || c.Longitude != 0 }

// StatusLabel: una clínica recién creada queda pendiente de aprobación.
func (c Clinic) StatusLabel() string {
	if c.IsActive {
		return "Active"
	}
	return "Pending Approval"
}

// GalleryImage es la forma pública (/clinics/{id}/gallery).
type GalleryImage struct {
	ImageURL string `json:"image_url"`
}

// Image es la forma administrable (/images/clinics/{id}).
type Image struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

type Owner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Patch sólo lleva los campos que cambiaron.
type Patch struct {
	Description   *string  `json:"description,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	Address       *string  `json:"address,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	ProfilePicURL *string  `json:"profile_pic_url,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Description == nil && p.Phone == nil && p.Address == nil &&
		p.Latitude == nil && p.Longitude == nil && p.ProfilePicURL == nil
}

// Editable son los valores del formulario de edición.
type Editable struct {
	Description string
	Phone       string
	Address     string
	Latitude    string
	Longitude   string
}

func EditableFrom(c Clinic) Editable {
	e := Editable{Description: c.Description, Phone: c.Phone, Address: c.Address}
	if c.HasLocation() {
		e.Latitude = strconv.FormatFloat(c.Latitude, 'f', -1, 64)
		e.Longitude = strconv.FormatFloat(c.Longitude, 'f', -1, 64)
	}
	return e
}

// normalizeText iguala lo que manda un textarea (CRLF) con lo que manda
// un input hidden (LF) y descarta espacios de los bordes.
func normalizeText(v string) string {
	return strings.TrimSpace(strings.ReplaceAll(v, "\r\n", "\n"))
}

func (e Editable) normalized() Editable {
	return Editable{
		Description: normalizeText(e.Description),
		Phone:       normalizeText(e.Phone),
		Address:     normalizeText(e.Address),
		Latitude:    normalizeText(e.Latitude),
		Longitude:   normalizeText(e.Longitude),
	}
}

// Diff arma el patch con lo que difiere de orig. Lat/lng viajan juntas.
// Ambos lados se normalizan igual antes de comparar.
func Diff(orig, cur Editable) (Patch, error) {
	orig, cur = orig.normalized(), cur.normalized()
	var p Patch
	if cur.Description != orig.Description {
		p.Description = &cur.Description
	}
	if cur.Phone != orig.Phone {
		p.Phone = &cur.Phone
	}
	if cur.Address != orig.Address {
		p.Address = &cur.Address
	}
	if cur.Latitude != orig.Latitude || cur.Longitude != orig.Longitude {
		lat, lng, err := ParseLocation(cur.Latitude, cur.Longitude)
		if err != nil {
			return Patch{}, err
		}
		p.Latitude, p.Longitude = &lat, &lng
	}
	return p, nil
}
