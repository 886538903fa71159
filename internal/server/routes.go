package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "contosocrafts/docs"
	"contosocrafts/internal/handlers"
	"contosocrafts/internal/views"
)

// staticDirs are the web root folders served as files. data/ is not among
// them.
var staticDirs = []string{"images", "css", "js", "lib"}

// Only allow requests from localhost to /swagger/*
func localhostOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, _ := net.SplitHostPort(r.RemoteAddr)
		if host != "127.0.0.1" && host != "::1" && host != "localhost" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.RequestIDHandler("req_id", "Request-Id"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.With(localhostOnly).Get("/swagger/*", httpSwagger.WrapHandler)

	pages := handlers.NewPageHandler(s.Store, s.Uploads, s.SessionManager, s.Templates)
	r.Get("/", pages.Index)
	r.Route("/Product", func(p chi.Router) {
		p.Get("/Read", pages.Read)
		p.Get("/Create", pages.CreateForm)
		p.Post("/Create", pages.Create)
		p.Post("/Create/upload-image", pages.UploadImage)
		p.Post("/Create/delete-image", pages.DeleteImage)
		p.Get("/Update", pages.UpdateForm)
		p.Post("/Update", pages.Update)
		p.Get("/Delete", pages.DeleteForm)
		p.Post("/Delete", pages.Delete)
	})

	api := handlers.NewAPIHandler(s.Store)
	r.Group(func(g chi.Router) {
		g.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"https://*", "http://*"},
			AllowedMethods: []string{"GET", "PATCH", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))
		g.Options("/products", func(w http.ResponseWriter, r *http.Request) {})
		g.Get("/products", api.GetProducts)
		g.Patch("/products", api.AddRating)
	})

	assets := views.Assets()
	for _, path := range views.StaticPaths {
		r.Handle(path, assets)
	}

	files := http.FileServer(http.Dir(s.Store.WebRoot()))
	for _, dir := range staticDirs {
		r.Handle("/"+dir+"/*", files)
	}

	return r
}
