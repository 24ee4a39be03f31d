package reports

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"petcare-web/internal/mutation"
	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/platform/resource"
)

// PageSize es el limit de los listados paginados.
const PageSize = 20

type CreateInput struct {
	AnimalType   string
	Condition    string
	Description  string
	Address      string
	ContactPhone string
	Image        *mutation.Upload
}

type UpdateInput struct {
	Condition    string  `json:"condition"`
	Description  string  `json:"description"`
	Address      string  `json:"address"`
	ContactPhone *string `json:"contact_phone"`
}

type Service struct {
	client  *httpclient.Client
	reports *resource.Resource[Report]
}

func NewService(c *httpclient.Client) *Service {
	return &Service{client: c, reports: resource.New[Report](c, "reports")}
}

func (s *Service) List(ctx context.Context, token string, skip int, status Status) ([]Report, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(PageSize))
	if status != "" {
		q.Set("status", string(status))
	}
	return s.reports.List(ctx, token, q)
}

func (s *Service) Mine(ctx context.Context, token string) ([]Report, error) {
	return resource.Fetch[[]Report](ctx, s.client, httpclient.Request{Path: s.reports.Path("my"), Token: token})
}

func (s *Service) Get(ctx context.Context, token, id string) (Report, error) {
	return s.reports.Get(ctx, token, id)
}

func (s *Service) Images(ctx context.Context, token, id string) ([]Image, error) {
	return resource.Fetch[[]Image](ctx, s.client, httpclient.Request{Path: s.reports.Path(id, "images"), Token: token})
}

func (s *Service) Notes(ctx context.Context, token, id string) ([]Note, error) {
	return resource.Fetch[[]Note](ctx, s.client, httpclient.Request{Path: s.reports.Path(id, "notes"), Token: token})
}

func (s *Service) Messages(ctx context.Context, token, id string) ([]Message, error) {
	return resource.Fetch[[]Message](ctx, s.client, httpclient.Request{Path: s.reports.Path(id, "messages"), Token: token})
}

func (s *Service) Stats(ctx context.Context, token string) (Stats, error) {
	return resource.Fetch[Stats](ctx, s.client, httpclient.Request{Path: s.reports.Path("stats", "overview"), Token: token})
}

// Create manda multipart: campos del reporte + imagen opcional ("image").
func (s *Service) Create(ctx context.Context, token string, in CreateInput) (Report, error) {
	form := map[string]string{
		"animal_type": strings.TrimSpace(in.AnimalType),
		"condition":   strings.TrimSpace(in.Condition),
		"description": strings.TrimSpace(in.Description),
		"address":     strings.TrimSpace(in.Address),
	}
	if p := strings.TrimSpace(in.ContactPhone); p != "" {
		form["contact_phone"] = p
	}
	req := httpclient.Request{Method: http.MethodPost, Path: s.reports.Path(), Token: token, Form: form}
	if in.Image != nil {
		req.Files = []httpclient.File{in.Image.File("image")}
	}
	return resource.Fetch[Report](ctx, s.client, req)
}

func (s *Service) Update(ctx context.Context, token, id string, in UpdateInput) (Report, error) {
	return s.reports.Patch(ctx, token, id, in)
}

func (s *Service) SetStatus(ctx context.Context, token, id string, st Status) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPatch,
		Path:   s.reports.Path(id, "status"),
		Token:  token,
		JSON:   map[string]Status{"status": st},
	}, nil)
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	return s.reports.Delete(ctx, token, id)
}

func (s *Service) UploadImage(ctx context.Context, token, id string, img *mutation.Upload) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.reports.Path(id, "images"),
		Token:  token,
		Files:  []httpclient.File{img.File("file")},
	}, nil)
}

func (s *Service) DeleteImage(ctx context.Context, token, imageID string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   s.reports.Path("images", imageID),
		Token:  token,
	}, nil)
}

func (s *Service) AddNote(ctx context.Context, token, id, note string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.reports.Path(id, "notes"),
		Token:  token,
		JSON:   map[string]string{"note": note},
	}, nil)
}

func (s *Service) SendMessage(ctx context.Context, token, id, msg string) error {
	return s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.reports.Path(id, "messages"),
		Token:  token,
		JSON:   map[string]string{"message": msg},
	}, nil)
}
