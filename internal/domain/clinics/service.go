package clinics

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"petcare-web/internal/mutation"
	"petcare-web/internal/platform/httpclient"
	"petcare-web/internal/platform/resource"
	"petcare-web/internal/validate"
)

const (
	SearchLimit = 50
	// DeleteConfirmation es el texto que hay que tipear para borrar una clínica.
	DeleteConfirmation = "DELETE CLINIC"
)

type Service struct {
	client  *httpclient.Client
	clinics *resource.Resource[Clinic]
	images  *resource.Resource[Image]
}

func NewService(c *httpclient.Client) *Service {
	return &Service{
		client:  c,
		clinics: resource.New[Clinic](c, "clinics"),
		images:  resource.New[Image](c, "images"),
	}
}

// Search lista clínicas públicas; name vacío => todas (hasta SearchLimit).
func (s *Service) Search(ctx context.Context, name string) ([]Clinic, error) {
	q := url.Values{"limit": {strconv.Itoa(SearchLimit)}}
	if name = strings.TrimSpace(name); name != "" {
		q.Set("name", name)
	}
	return s.clinics.List(ctx, "", q)
}

func (s *Service) ByOwner(ctx context.Context, token, ownerID string) ([]Clinic, error) {
	return s.clinics.List(ctx, token, url.Values{"owner_id": {ownerID}})
}

func (s *Service) Get(ctx context.Context, token, id string) (Clinic, error) {
	return s.clinics.Get(ctx, token, id)
}

func (s *Service) Gallery(ctx context.Context, id string) ([]GalleryImage, error) {
	return resource.Fetch[[]GalleryImage](ctx, s.client, httpclient.Request{Path: s.clinics.Path(id, "gallery")})
}

func (s *Service) Images(ctx context.Context, token, id string) ([]Image, error) {
	return resource.Fetch[[]Image](ctx, s.client, httpclient.Request{Path: s.images.Path("clinics", id), Token: token})
}

func (s *Service) Owner(ctx context.Context, token string, ownerID int) (Owner, error) {
	return resource.FetchData[Owner](ctx, s.client, httpclient.Request{
		Path:  "/users/" + strconv.Itoa(ownerID),
		Token: token,
	})
}

func (s *Service) Create(ctx context.Context, token string, in CreateInput) (Clinic, error) {
	return s.clinics.Create(ctx, token, in)
}

func (s *Service) Update(ctx context.Context, token, id string, p Patch) error {
	if p.Empty() {
		return validate.Errorf("No changes detected.")
	}
	_, err := s.clinics.Patch(ctx, token, id, p)
	return err
}

func (s *Service) Delete(ctx context.Context, token, id, confirmation string) error {
	if confirmation != DeleteConfirmation {
		return validate.Errorf("Type %s to confirm.", DeleteConfirmation)
	}
	return s.clinics.Delete(ctx, token, id)
}

func (s *Service) UploadImage(ctx context.Context, token, id string, up *mutation.Upload) (Image, error) {
	return resource.Fetch[Image](ctx, s.client, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.images.Path("clinics", id),
		Token:  token,
		Files:  []httpclient.File{up.File("file")},
	})
}

func (s *Service) DeleteImage(ctx context.Context, token, imageID string) error {
	return s.images.Delete(ctx, token, imageID)
}

// SetProfilePicture sube la imagen y luego apunta profile_pic_url a ella.
// Son dos llamadas: si la segunda falla la imagen queda en la galería.
func (s *Service) SetProfilePicture(ctx context.Context, token, id string, up *mutation.Upload) error {
	img, err := s.UploadImage(ctx, token, id, up)
	if err != nil {
		return err
	}
	_, err = s.clinics.Patch(ctx, token, id, Patch{ProfilePicURL: &img.URL})
	return err
}

// ParseLocation valida el pin del mapa.
func ParseLocation(lat, lng string) (float64, float64, error) {
	la, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lo, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil || la < -90 || la > 90 || lo < -180 || lo > 180 || (la == 0 && lo == 0) {
		return 0, 0, validate.Errorf("Please pin clinic location on the map.")
	}
	return la, lo, nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
