package reports

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" in_progress ")
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, st)

	_, ok = ParseStatus("DONE")
	assert.False(t, ok)
}

func TestStatus_Locked(t *testing.T) {
	for _, st := range Statuses {
		want := st == StatusClosed || st == StatusRejected
		assert.Equal(t, want, st.Locked(), string(st))
	}
}

func TestStats_OrderedFillsMissing(t *testing.T) {
	got := Stats{StatusOpen: 4, StatusClosed: 1}.Ordered()
	require.Len(t, got, len(Statuses))
	assert.Equal(t, StatCount{StatusOpen, 4}, got[0])
	assert.Equal(t, StatCount{StatusInProgress, 0}, got[1])
	assert.Equal(t, StatCount{StatusClosed, 1}, got[5])
}

func TestBuildWorkbook(t *testing.T) {
	phone := "0771234567"
	data, err := BuildWorkbook([]Report{
		{ID: 1, AnimalType: "Dog", Condition: "Injured", Status: StatusOpen, Address: "Kandy", ContactPhone: &phone},
		{ID: 2, AnimalType: "Cat", Condition: "Sick", Status: StatusClosed, Address: "Galle"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Animal", rows[0][1])
	assert.Equal(t, "Dog", rows[1][1])
	assert.Equal(t, "0771234567", rows[1][5])
	assert.Equal(t, "CLOSED", rows[2][3])
}
