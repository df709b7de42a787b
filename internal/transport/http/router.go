// Package http mounts the REST surface: registration and OTP
// verification, login, logout, password reset, profile management, and
// the branch, event, sermon, content, and donation resources.
package http

import (
	"net/http"
	"strings"
	"time"

	"churchapp/internal/domain"
	obsmw "churchapp/internal/observability/middleware"
	"churchapp/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Auth    service.AuthService
	Tokens  service.TokenService
	Church  service.ChurchService
	Content service.ContentService
	Giving  service.GivingService
	Links   ResetTokenParser

	CORSOrigins     string // comma separated, empty means any
	RateLimitPerMin int    // per-IP cap on the credential endpoints
}

func NewRouter(opts Options) *chi.Mux {
	ah := &authHandler{auth: opts.Auth, tokens: opts.Tokens, links: opts.Links}
	ch := &churchHandler{church: opts.Church}
	th := &contentHandler{content: opts.Content}
	gh := &givingHandler{giving: opts.Giving}

	r := chi.NewRouter()
	r.Use(obsmw.WithRequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(opts.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(obsmw.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	authn := requireAuth(opts.Tokens)
	staff := requireRole(domain.RoleStaff, domain.RolePastor, domain.RoleAdmin)

	// Credential endpoints carry a per-IP rate limit; everything here
	// is either guessable (OTP, password) or sends email.
	r.Group(func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.Use(httprate.LimitByIP(opts.RateLimitPerMin, time.Minute))
		}
		r.Post("/register/", ah.register)
		r.Post("/register/verify/", ah.verifyEmail)
		r.Post("/login/", ah.login)
		r.Post("/password/reset/request/", ah.requestReset)
		r.Post("/password/reset/confirm/", ah.confirmReset)
	})

	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Post("/logout/", ah.logout)
		r.Get("/profile/", ah.me)
		r.Put("/profile/update/", ah.updateProfile)
		r.Patch("/profile/update/", ah.updateProfile)
		r.Post("/account/delete/", ah.deleteAccount)

		r.Post("/donations/", gh.donate)
		r.Get("/donations/", gh.history)
	})

	r.Route("/branches", func(r chi.Router) {
		r.Get("/", ch.listBranches)
		r.Get("/{id}/", ch.getBranch)
		r.Group(func(r chi.Router) {
			r.Use(authn, staff)
			r.Post("/", ch.createBranch)
			r.Put("/{id}/", ch.updateBranch)
			r.Delete("/{id}/", ch.deleteBranch)
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", ch.listEvents)
		r.Get("/{id}/", ch.getEvent)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/", ch.createEvent)
			r.Put("/{id}/", ch.updateEvent)
			r.Delete("/{id}/", ch.deleteEvent)
		})
	})

	r.Route("/sermons", func(r chi.Router) {
		r.Get("/", ch.listSermons)
		r.Get("/{id}/", ch.getSermon)
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Post("/", ch.createSermon)
			r.Put("/{id}/", ch.updateSermon)
			r.Delete("/{id}/", ch.deleteSermon)
		})
	})

	// Tag management is members-only, reads included.
	r.Route("/tags", func(r chi.Router) {
		r.Use(authn)
		r.Get("/", th.listTags)
		r.Post("/", th.createTag)
		r.Delete("/{id}/", th.deleteTag)
	})

	// Articles and blog posts share handlers; so do the media kinds.
	postRoutes := func(kind string) func(chi.Router) {
		return func(r chi.Router) {
			r.Get("/", th.listPosts(kind))
			r.Get("/{id}/", th.getPost)
			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Post("/", th.createPost(kind))
				r.Put("/{id}/", th.updatePost)
				r.Patch("/{id}/", th.updatePost)
				r.Delete("/{id}/", th.deletePost)
			})
		}
	}
	r.Route("/articles", postRoutes(domain.PostArticle))
	r.Route("/blogposts", postRoutes(domain.PostBlog))

	mediaRoutes := func(kind string) func(chi.Router) {
		return func(r chi.Router) {
			r.Get("/", th.listMedia(kind))
			r.Get("/{id}/", th.getMedia)
			r.Group(func(r chi.Router) {
				r.Use(authn)
				r.Post("/", th.createMedia(kind))
				r.Put("/{id}/", th.updateMedia)
				r.Patch("/{id}/", th.updateMedia)
				r.Delete("/{id}/", th.deleteMedia)
			})
		}
	}
	r.Route("/images", mediaRoutes(domain.MediaImage))
	r.Route("/videos", mediaRoutes(domain.MediaVideo))
	r.Route("/documents", mediaRoutes(domain.MediaDocument))

	return r
}

func splitOrigins(csv string) []string {
	var out []string
	for _, o := range strings.Split(csv, ",") {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
