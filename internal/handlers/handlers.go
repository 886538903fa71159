// Package handlers provides the HTTP handlers for the ContosoCrafts catalog.
//
// PageHandler serves the server-rendered pages (list, read, create, update,
// delete) and the AJAX image endpoints used by the create form. APIHandler
// serves the JSON products API.
//
// Example usage:
//
//	pages := handlers.NewPageHandler(store, uploader, sessionManager, tmpl)
//	r := chi.NewRouter()
//	r.Get("/", pages.Index)
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"contosocrafts/internal/models"
	"contosocrafts/internal/sanitize"
	"contosocrafts/internal/session"
	"contosocrafts/internal/upload"
)

// maxFormSize caps request bodies. It sits above upload.MaxSize so that
// oversized images reach the upload checks and get the proper message.
const maxFormSize = 10 << 20

// ProductStore is the catalog persistence the handlers depend on.
type ProductStore interface {
	GetAll() []*models.Product
	Create(product *models.Product)
	Update(product *models.Product) bool
	Delete(id string)
	AddRating(productID string, rating int) bool
}

// ImageUploader stores and removes product images.
type ImageUploader interface {
	UploadImage(f upload.File, title string) upload.Result
	DeleteImage(imagePath string) upload.Result
	Replace(f upload.File, title, previous string) (string, error)
}

type PageHandler struct {
	Store          ProductStore
	Uploads        ImageUploader
	SessionManager *session.SessionManager
	Validator      *sanitize.Validator
	Templates      *template.Template
}

func NewPageHandler(store ProductStore, uploads ImageUploader, sm *session.SessionManager, tmpl *template.Template) *PageHandler {
	return &PageHandler{
		Store:          store,
		Uploads:        uploads,
		SessionManager: sm,
		Validator:      sanitize.NewValidator(),
		Templates:      tmpl,
	}
}

// PageData is the model handed to every page template.
type PageData struct {
	Title    string
	Year     int
	Flashes  []string
	Message  string
	Products []*models.Product
	Product  *models.Product
	Errors   sanitize.Errors
	Query    string
	Type     string
	Types    []models.UniversityType
	Stars    []int
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	data.Year = time.Now().Year()
	data.Flashes = h.SessionManager.PopFlashes(r)
	data.Types = models.UniversityTypes
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

// parseForm parses url-encoded and multipart bodies alike.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// findByID returns the product whose id equals id exactly. Entries with no
// id are skipped.
func findByID(products []*models.Product, id string) *models.Product {
	if id == "" {
		return nil
	}
	for _, p := range products {
		if p != nil && p.ID != "" && p.ID == id {
			return p
		}
	}
	return nil
}
