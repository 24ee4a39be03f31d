package users

import (
	"context"
	"net/http"

	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/platform/resource"
)

type Service struct {
	client *httpclient.Client
	users  *resource.Resource[User]
}

func NewService(c *httpclient.Client) *Service {
	return &Service{client: c, users: resource.New[User](c, "users")}
}

// Get usa la forma {success, data} de /users.
func (s *Service) Get(ctx context.Context, token, id string) (User, error) {
	return resource.FetchData[User](ctx, s.client, httpclient.Request{Path: s.users.Path(id), Token: token})
}

func (s *Service) ChangePassword(ctx context.Context, token, id, password string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPatch,
		Path:   s.users.Path(id),
		Token:  token,
		JSON:   map[string]string{"password": password},
	}, nil)
}
