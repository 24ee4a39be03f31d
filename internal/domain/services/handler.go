package services

import (
	"net/http"
	"net/url"
	"strconv"

	"petcare-web/internal/mutation"
	"petcare-web/internal/render"
	"petcare-web/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func RegisterRoutes(r chi.Router, rd *render.Renderer, log *zap.Logger) {
	r.Get("/services", listHandler(rd, log))
	r.Post("/services/view-mode", viewModeHandler(log))
	r.Get("/services/{providerID}", detailHandler(rd))
}

type servicesPage struct {
	Providers   render.List[Provider]
	Filter      Filter
	Kinds       []Kind
	ViewMode    string
	MapView     bool
	ReturnQuery string
}

func listHandler(rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := Filter{Service: q.Get("service"), Location: q.Get("location"), Sort: q.Get("sort")}
		if f.Sort != SortPrice {
			f.Sort = SortReview
		}

		mode := session.ViewList
		if s, ok := session.FromContext(r.Context()); ok {
			m, err := s.ViewMode(r.Context())
			if err != nil {
				log.Warn("read view mode failed", zap.Error(err))
			}
			mode = m
		}

		rq := url.Values{"service": {f.Service}, "location": {f.Location}, "sort": {f.Sort}}

		rd.Page(w, http.StatusOK, "services", render.NewView(r, "Pet Services", servicesPage{
			Providers:   render.NewList(Find(f), nil, ""),
			Filter:      f,
			Kinds:       Kinds(),
			ViewMode:    mode,
			MapView:     mode == session.ViewMap,
			ReturnQuery: rq.Encode(),
		}))
	}
}

// viewModeHandler guarda la preferencia lista/mapa y vuelve a /services
// con los mismos filtros.
func viewModeHandler(log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back := "/services"
		if qs := r.FormValue("return_query"); qs != "" {
			back += "?" + qs
		}
		if s, ok := session.FromContext(r.Context()); ok {
			if err := s.SetViewMode(r.Context(), r.FormValue("mode")); err != nil {
				log.Warn("store view mode failed", zap.Error(err))
				back = mutation.WithParam(back, "error", mutation.GenericFailure)
			}
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func detailHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(chi.URLParam(r, "providerID"))
		p, ok := ByID(id)
		if !ok {
			http.Redirect(w, r, mutation.WithParam("/services", "error", "Service provider not found."), http.StatusSeeOther)
			return
		}
		rd.Page(w, http.StatusOK, "service_detail", render.NewView(r, p.Name, p))
	}
}
