// Package httpapi is the JSON-over-HTTP surface of the studio server: the
// chi router, its middleware chain and the handlers translating between
// DTOs and the services.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/yogastudio/internal/common"
	"github.com/dmitrijs2005/yogastudio/internal/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options holds router settings taken from the server config.
type Options struct {
	APIPrefix          string
	CORSAllowedOrigins []string
	AuthRateLimit      RateLimitConfig
}

// NewRouter builds the full route tree. Authentication routes are public
// and rate limited; everything else under the prefix requires a bearer
// token. /healthz is mounted outside the prefix.
func NewRouter(h *Handler, authz RequestAuthorizer, opts Options, log logging.Logger) http.Handler {
	if log == nil {
		log = logging.Nop()
	}
	h.log = log

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{common.AuthorizationHeaderName, "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, messageResponse{Message: msgNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, messageResponse{Message: msgBadRequest})
	})

	r.Get("/healthz", h.healthz)

	api := func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(RateLimiter(opts.AuthRateLimit))
			r.Post("/login", h.login)
			r.Post("/register", h.register)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(authz, log))

			r.Route("/session", func(r chi.Router) {
				r.Get("/", h.listSessions)
				r.Post("/", h.createSession)
				r.Get("/{id}", h.getSession)
				r.Put("/{id}", h.updateSession)
				r.Delete("/{id}", h.deleteSession)
				r.Post("/{id}/participate/{userId}", h.participate)
				r.Delete("/{id}/participate/{userId}", h.noLongerParticipate)
			})

			r.Route("/teacher", func(r chi.Router) {
				r.Get("/", h.listTeachers)
				r.Get("/{id}", h.getTeacher)
			})

			r.Route("/user", func(r chi.Router) {
				r.Get("/{id}", h.getUser)
				r.Delete("/{id}", h.deleteUser)
			})
		})
	}

	if prefix := strings.TrimRight(opts.APIPrefix, "/"); prefix != "" {
		r.Route(prefix, api)
	} else {
		r.Group(api)
	}

	return r
}
