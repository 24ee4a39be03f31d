package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"petcare-web/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_PerRole(t *testing.T) {
	_, actions := Dashboard(RoleWelfare)
	require.Len(t, actions, 2)
	assert.Equal(t, "/reports/new", actions[0].Href)

	_, actions = Dashboard(RoleClinic)
	assert.Equal(t, "/clinics/new", actions[0].Href)

	intro, actions := Dashboard("guest")
	assert.Empty(t, intro)
	assert.Nil(t, actions)
}

func TestService_GetAndChangePassword(t *testing.T) {
	var body map[string]string
	r := chi.NewRouter()
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", chi.URLParam(r, "id"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":12,"name":"Kasun","email":"k@x.lk","role":"clinic"}}`))
	})
	r.Patch("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	c, err := httpclient.New(httpclient.Options{BaseURL: ts.URL})
	require.NoError(t, err)
	svc := NewService(c)

	u, err := svc.Get(context.Background(), "tok", "12")
	require.NoError(t, err)
	assert.Equal(t, RoleClinic, u.Role)

	require.NoError(t, svc.ChangePassword(context.Background(), "tok", "12", "secret1"))
	assert.Equal(t, map[string]string{"password": "secret1"}, body)
}
