package clinics

import (
	"testing"

	"petcare-web/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_OnlyChangedFields(t *testing.T) {
	orig := EditableFrom(Clinic{Description: "Vets", Phone: "0771234567", Address: "Kandy", Latitude: 7.29, Longitude: 80.63})

	cur := orig
	cur.Phone = "0112345678"
	p, err := Diff(orig, cur)
	require.NoError(t, err)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "0112345678", *p.Phone)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Address)
	assert.Nil(t, p.Latitude)

	p, err = Diff(orig, orig)
	require.NoError(t, err)
	assert.True(t, p.Empty())
}

func TestDiff_IgnoresLineEndingsAndPadding(t *testing.T) {
	orig := Editable{Description: "Open daily.\nEmergencies welcome.", Address: "Kandy", Latitude: "7.29", Longitude: "80.63"}
	cur := Editable{Description: "Open daily.\r\nEmergencies welcome.\r\n", Address: "  Kandy ", Latitude: "7.29", Longitude: " 80.63"}

	p, err := Diff(orig, cur)
	require.NoError(t, err)
	assert.True(t, p.Empty())

	cur.Description = "Open daily.\r\nClosed Sundays."
	p, err = Diff(orig, cur)
	require.NoError(t, err)
	require.NotNil(t, p.Description)
	assert.Equal(t, "Open daily.\nClosed Sundays.", *p.Description)
}

func TestDiff_LocationTravelsTogether(t *testing.T) {
	orig := EditableFrom(Clinic{Latitude: 7.29, Longitude: 80.63})
	cur := orig
	cur.Latitude = "6.9271"

	p, err := Diff(orig, cur)
	require.NoError(t, err)
	require.NotNil(t, p.Latitude)
	require.NotNil(t, p.Longitude)
	assert.InDelta(t, 6.9271, *p.Latitude, 1e-9)
	assert.InDelta(t, 80.63, *p.Longitude, 1e-9)
}

func TestParseLocation(t *testing.T) {
	_, _, err := ParseLocation("", "")
	ve, ok := validate.As(err)
	require.True(t, ok)
	assert.Equal(t, "Please pin clinic location on the map.", ve.Msg)

	_, _, err = ParseLocation("91", "80")
	assert.Error(t, err)

	lat, lng, err := ParseLocation(" 6.9271 ", "79.8612")
	require.NoError(t, err)
	assert.InDelta(t, 6.9271, lat, 1e-9)
	assert.InDelta(t, 79.8612, lng, 1e-9)
}

func TestClinic_StatusLabel(t *testing.T) {
	assert.Equal(t, "Active", Clinic{IsActive: true}.StatusLabel())
	assert.Equal(t, "Pending Approval", Clinic{}.StatusLabel())
	assert.Empty(t, EditableFrom(Clinic{}).Latitude)
}
