package clinics

import (
	"context"
	"net/http"
	"strings"
	"time"

	"petcare-web/internal/domain/appointments"
	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/render"
	"petcare-web/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const signInToBook = "Please sign in to book appointments."

func RegisterRoutes(r chi.Router, svc *Service, appts *appointments.Service, rd *render.Renderer, guard func(http.Handler) http.Handler, log *zap.Logger) {
	// Públicas
	r.Get("/clinics", listClinicsHandler(svc, rd, log))
	r.Get("/clinics/search", searchFragmentHandler(svc, rd, log))

	r.Group(func(pr chi.Router) {
		pr.Use(guard)

		pr.Get("/clinics/new", newClinicPageHandler(rd))
		pr.Post("/clinics", createClinicHandler(svc, rd, log))

		pr.Get("/my-clinics", myClinicsHandler(svc, rd, log))
		pr.Get("/my-clinics/{clinicID}", manageClinicHandler(svc, rd))
		pr.Post("/my-clinics/{clinicID}", updateClinicHandler(svc, log))
		pr.Post("/my-clinics/{clinicID}/images", uploadImageHandler(svc, log))
		pr.Post("/my-clinics/{clinicID}/profile-pic", profilePicHandler(svc, log))
		pr.Post("/my-clinics/{clinicID}/images/{imageID}/delete", deleteImageHandler(svc, log))
		pr.Post("/my-clinics/{clinicID}/delete", deleteClinicHandler(svc, log))
	})

	r.Get("/clinics/{clinicID}", clinicPublicHandler(svc, appts, rd))
}

type clinicsPage struct {
	Clinics render.List[Clinic]
	Name    string
}

type clinicPublicPage struct {
	Clinic       Clinic
	Gallery      render.List[GalleryImage]
	Date         string
	Slots        render.List[appointments.SlotView]
	Chosen       *appointments.AvailableSlot
	SignInToBook string
}

type clinicFormPage struct {
	Name     string
	Desc     string
	Phone    string
	Address  string
	Lat, Lng string
}

type manageClinicPage struct {
	Clinic  Clinic
	Form    Editable
	Images  render.List[Image]
	Owner   render.Region[Owner]
	Confirm string
}

func listClinicsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		items, err := svc.Search(r.Context(), name)
		if err != nil {
			log.Warn("search clinics failed", zap.Error(err))
		}
		rd.Page(w, http.StatusOK, "clinics", render.NewView(r, "Find a Clinic", clinicsPage{
			Clinics: render.NewList(items, err, "Failed to load clinics."),
			Name:    name,
		}))
	}
}

// searchFragmentHandler devuelve sólo las tarjetas; lo consume el buscador con debounce.
func searchFragmentHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			log.Warn("search clinics failed", zap.Error(err))
		}
		rd.Fragment(w, "clinic_cards", render.NewList(items, err, "Failed to load clinics."))
	}
}

func clinicPublicHandler(svc *Service, appts *appointments.Service, rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		q := r.URL.Query()
		date := appointments.ParseDate(q.Get("date"), time.Now())
		token := middleware.Token(r.Context())

		var (
			clinic     Clinic
			clinicErr  error
			gallery    []GalleryImage
			galleryErr error
			slots      []appointments.AvailableSlot
			slotsErr   error
			g          errgroup.Group
		)
		g.Go(func() error { clinic, clinicErr = svc.Get(r.Context(), token, id); return nil })
		g.Go(func() error { gallery, galleryErr = svc.Gallery(r.Context(), id); return nil })
		g.Go(func() error { slots, slotsErr = appts.Available(r.Context(), token, id, date); return nil })
		_ = g.Wait()

		if clinicErr != nil {
			http.Redirect(w, r, mutation.WithParam("/clinics", "error", "Clinic not found."), http.StatusSeeOther)
			return
		}

		var sel *appointments.Selection
		if s, ok := appointments.ParseSelection(q); ok {
			sel = &s
		}
		views := appointments.SlotViews(slots, sel)

		v := render.NewView(r, clinic.Name, nil)
		page := clinicPublicPage{
			Clinic:  clinic,
			Gallery: render.NewList(gallery, galleryErr, "Failed to load gallery."),
			Date:    date,
			Slots:   render.NewList(views, slotsErr, "Failed to load slots."),
		}
		if chosen, ok := appointments.Selected(views); ok {
			// anónimo: la selección se muestra pero no se puede confirmar
			if v.SignedIn {
				page.Chosen = &chosen
			} else {
				page.SignInToBook = signInToBook
			}
		}
		v.Data = page
		rd.Page(w, http.StatusOK, "clinic_public", v)
	}
}

func newClinicPageHandler(rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rd.Page(w, http.StatusOK, "clinic_new", render.NewView(r, "Register a Clinic", clinicFormPage{}))
	}
}

func createClinicHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := clinicFormPage{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Desc:    r.FormValue("description"),
			Phone:   strings.TrimSpace(r.FormValue("phone")),
			Address: r.FormValue("address"),
			Lat:     r.FormValue("latitude"),
			Lng:     r.FormValue("longitude"),
		}

		var in CreateInput
		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "clinic.create",
			Validate: func() error {
				if form.Name == "" {
					return validate.Errorf("Clinic name is required.")
				}
				lat, lng, err := ParseLocation(form.Lat, form.Lng)
				if err != nil {
					return err
				}
				if err := validate.Phone(form.Phone); err != nil {
					return err
				}
				in = CreateInput{
					Name:        form.Name,
					Description: optional(form.Desc),
					Phone:       optional(form.Phone),
					Address:     optional(form.Address),
					Latitude:    lat,
					Longitude:   lng,
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				_, err := svc.Create(ctx, middleware.Token(ctx), in)
				return err
			},
			Success:  "/my-clinics",
			Notice:   "Clinic registered successfully. Pending admin approval.",
			Fallback: "Failed to create clinic.",
			Rerender: func(w http.ResponseWriter, msg string) {
				v := render.NewView(r, "Register a Clinic", form)
				v.Error = msg
				rd.Page(w, http.StatusUnprocessableEntity, "clinic_new", v)
			},
		})
	}
}

func myClinicsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := middleware.GetIdentity(r.Context())
		items, err := svc.ByOwner(r.Context(), id.Token, id.Claims.UserID)
		if err != nil {
			log.Warn("list my clinics failed", zap.Error(err))
		}
		rd.Page(w, http.StatusOK, "my_clinics", render.NewView(r, "My Clinics",
			render.NewList(items, err, "Failed to load your clinics.")))
	}
}

func manageClinicHandler(svc *Service, rd *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		token := middleware.Token(r.Context())

		var (
			clinic    Clinic
			clinicErr error
			images    []Image
			imagesErr error
			g         errgroup.Group
		)
		g.Go(func() error { clinic, clinicErr = svc.Get(r.Context(), token, id); return nil })
		g.Go(func() error { images, imagesErr = svc.Images(r.Context(), token, id); return nil })
		_ = g.Wait()

		if clinicErr != nil {
			http.Redirect(w, r, mutation.WithParam("/my-clinics", "error", "You are not allowed to view this clinic."), http.StatusSeeOther)
			return
		}

		// el dueño depende de owner_id
		var (
			owner    Owner
			ownerErr error = validate.Errorf("Owner unknown.")
		)
		if clinic.OwnerID != 0 {
			owner, ownerErr = svc.Owner(r.Context(), token, clinic.OwnerID)
		}

		rd.Page(w, http.StatusOK, "clinic_manage", render.NewView(r, clinic.Name, manageClinicPage{
			Clinic:  clinic,
			Form:    EditableFrom(clinic),
			Images:  render.NewList(images, imagesErr, "Failed to load images."),
			Owner:   render.NewRegion(owner, ownerErr, "Failed to load owner."),
			Confirm: DeleteConfirmation,
		}))
	}
}

func manageURL(id string) string { return "/my-clinics/" + id }

func updateClinicHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		to := manageURL(id)

		// orig_* son los valores de la última carga de la página
		orig := Editable{
			Description: r.FormValue("orig_description"),
			Phone:       r.FormValue("orig_phone"),
			Address:     r.FormValue("orig_address"),
			Latitude:    r.FormValue("orig_latitude"),
			Longitude:   r.FormValue("orig_longitude"),
		}
		cur := Editable{
			Description: strings.TrimSpace(r.FormValue("description")),
			Phone:       strings.TrimSpace(r.FormValue("phone")),
			Address:     strings.TrimSpace(r.FormValue("address")),
			Latitude:    strings.TrimSpace(r.FormValue("latitude")),
			Longitude:   strings.TrimSpace(r.FormValue("longitude")),
		}

		var p Patch
		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "clinic.update",
			Validate: func() error {
				if err := validate.Phone(cur.Phone); err != nil {
					return err
				}
				var err error
				p, err = Diff(orig, cur)
				if err != nil {
					return err
				}
				if p.Empty() {
					return validate.Errorf("No changes detected.")
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				return svc.Update(ctx, middleware.Token(ctx), id, p)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Clinic updated successfully.",
			Fallback: "Update failed.",
		})
	}
}

func uploadImageHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		img, uploadErr := mutation.ReadUpload(r, "file")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name:     "clinic.image.upload",
			Validate: func() error { return requireUpload(img, uploadErr) },
			Call: func(ctx context.Context) error {
				_, err := svc.UploadImage(ctx, middleware.Token(ctx), id, img)
				return err
			},
			Success:  manageURL(id),
			Failure:  manageURL(id),
			Notice:   "Image uploaded.",
			Fallback: "Image upload failed.",
		})
	}
}

func profilePicHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		img, uploadErr := mutation.ReadUpload(r, "file")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name:     "clinic.profile_pic",
			Validate: func() error { return requireUpload(img, uploadErr) },
			Call: func(ctx context.Context) error {
				return svc.SetProfilePicture(ctx, middleware.Token(ctx), id, img)
			},
			Success:  manageURL(id),
			Failure:  manageURL(id),
			Notice:   "Profile picture updated.",
			Fallback: "Failed to update profile picture.",
		})
	}
}

func requireUpload(img *mutation.Upload, err error) error {
	if err != nil {
		return err
	}
	if img == nil {
		return validate.Errorf("Please choose an image.")
	}
	return nil
}

func deleteImageHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		imageID := chi.URLParam(r, "imageID")

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "clinic.image.delete",
			Call: func(ctx context.Context) error {
				return svc.DeleteImage(ctx, middleware.Token(ctx), imageID)
			},
			Success:  manageURL(id),
			Failure:  manageURL(id),
			Notice:   "Image deleted.",
			Fallback: "Failed to delete image.",
		})
	}
}

func deleteClinicHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "clinicID")
		confirm := strings.TrimSpace(r.FormValue("confirm"))

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "clinic.delete",
			Validate: func() error {
				if confirm != DeleteConfirmation {
					return validate.Errorf("Type %s to confirm.", DeleteConfirmation)
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				return svc.Delete(ctx, middleware.Token(ctx), id, confirm)
			},
			Success:  "/my-clinics",
			Failure:  manageURL(id),
			Notice:   "Clinic deleted.",
			Fallback: "Failed to delete clinic.",
		})
	}
}
