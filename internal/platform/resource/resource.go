package resource

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"petcare-web/internal/platform/httpclient"
)

// Resource es un cliente tipado para una colección REST del backend.
// T es la forma del registro que devuelve el backend.
type Resource[T any] struct {
	client *httpclient.Client
	base   string
}

func New[T any](c *httpclient.Client, base string) *Resource[T] {
	return &Resource[T]{client: c, base: "/" + strings.Trim(base, "/")}
}

// Path arma base + segmentos escapados. Path() => "/reports/".
func (r *Resource[T]) Path(parts ...string) string {
	if len(parts) == 0 {
		return r.base + "/"
	}
	esc := make([]string, 0, len(parts))
	for _, p := range parts {
		esc = append(esc, url.PathEscape(p))
	}
	return r.base + "/" + strings.Join(esc, "/")
}

func (r *Resource[T]) Client() *httpclient.Client { return r.client }

func (r *Resource[T]) List(ctx context.Context, token string, q url.Values) ([]T, error) {
	return Fetch[[]T](ctx, r.client, httpclient.Request{Path: r.Path(), Query: q, Token: token})
}

func (r *Resource[T]) Get(ctx context.Context, token, id string) (T, error) {
	return Fetch[T](ctx, r.client, httpclient.Request{Path: r.Path(id), Token: token})
}

func (r *Resource[T]) Create(ctx context.Context, token string, in any) (T, error) {
	return Fetch[T](ctx, r.client, httpclient.Request{Method: http.MethodPost, Path: r.Path(), Token: token, JSON: in})
}

func (r *Resource[T]) Patch(ctx context.Context, token, id string, in any) (T, error) {
	return Fetch[T](ctx, r.client, httpclient.Request{Method: http.MethodPatch, Path: r.Path(id), Token: token, JSON: in})
}

func (r *Resource[T]) Delete(ctx context.Context, token, id string) error {
	return r.client.Do(ctx, httpclient.Request{Method: http.MethodDelete, Path: r.Path(id), Token: token}, nil)
}

// Fetch ejecuta una request y decodifica la respuesta como T.
// Sirve para sub-recursos (/reports/{id}/notes, /clinics/{id}/gallery, ...).
func Fetch[T any](ctx context.Context, c *httpclient.Client, req httpclient.Request) (T, error) {
	var out T
	if err := c.Do(ctx, req, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Envelope es la forma {success, data, message} de /auth y /users.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// FetchData ejecuta la request y desenvuelve Envelope.Data.
// Un 2xx con success=false se trata como fallo del backend.
func FetchData[T any](ctx context.Context, c *httpclient.Client, req httpclient.Request) (T, error) {
	env, err := Fetch[Envelope[T]](ctx, c, req)
	if err != nil {
		var zero T
		return zero, err
	}
	if !env.Success {
		var zero T
		return zero, &httpclient.HTTPError{StatusCode: http.StatusOK, Message: env.Message}
	}
	return env.Data, nil
}
