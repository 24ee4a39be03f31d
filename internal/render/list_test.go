package render

import (
	"errors"
	"net/url"
	"testing"

	"petcare-web/internal/platform/httpclient"

	"github.com/stretchr/testify/assert"
)

func TestPager_Bounds(t *testing.T) {
	q := url.Values{"status": {"OPEN"}, "skip": {"0"}, "notice": {"Saved"}}

	p := NewPager("/reports", q, 0, 20, 20)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, "/reports?skip=20&status=OPEN", p.NextURL())

	p = NewPager("/reports", q, 20, 20, 7)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 2, p.Page())
	assert.Equal(t, "/reports?status=OPEN", p.PrevURL())
}

func TestParseSkip(t *testing.T) {
	assert.Equal(t, 40, ParseSkip(url.Values{"skip": {"40"}}))
	assert.Equal(t, 0, ParseSkip(url.Values{"skip": {"-3"}}))
	assert.Equal(t, 0, ParseSkip(url.Values{"skip": {"abc"}}))
	assert.Equal(t, 0, ParseSkip(url.Values{}))
}

func TestNewList_ErrorBranches(t *testing.T) {
	l := NewList([]int{1, 2}, nil, "Failed.")
	assert.Empty(t, l.Error)
	assert.Equal(t, 2, l.Len())

	l = NewList[int](nil, nil, "Failed.")
	assert.True(t, l.Empty())
	assert.Empty(t, l.Error)

	l = NewList[int](nil, &httpclient.HTTPError{StatusCode: 403, Message: "Not allowed"}, "Failed.")
	assert.Equal(t, "Not allowed", l.Error)

	l = NewList[int](nil, errors.New("boom"), "Failed.")
	assert.Equal(t, "Failed.", l.Error)

	r := NewRegion(3, nil, "x")
	assert.True(t, r.OK())
}
