package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"contosocrafts/internal/models"
)

var ratingStars = []int{1, 2, 3, 4, 5}

// FilterProducts applies the list page search. query matches title or
// description case-insensitively: title matches come first, then products
// matching on description only. typeFilter is applied when it names a
// defined type and ignored otherwise. nil entries are dropped.
func FilterProducts(products []*models.Product, query, typeFilter string) []*models.Product {
	out := make([]*models.Product, 0, len(products))
	query = strings.TrimSpace(query)
	if query == "" {
		for _, p := range products {
			if p != nil {
				out = append(out, p)
			}
		}
	} else {
		needle := strings.ToLower(query)
		var byDescription []*models.Product
		for _, p := range products {
			switch {
			case p == nil:
			case strings.Contains(strings.ToLower(p.Title), needle):
				out = append(out, p)
			case strings.Contains(strings.ToLower(p.Description), needle):
				byDescription = append(byDescription, p)
			}
		}
		out = append(out, byDescription...)
	}

	if t, ok := models.LookupUniversityType(typeFilter); ok {
		filtered := out[:0]
		for _, p := range out {
			if p.TypeOfUniversity == t {
				filtered = append(filtered, p)
			}
		}
		out = filtered
	}
	return out
}

// Index lists the catalog, optionally filtered by ?q= and ?type=.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	typeFilter := r.URL.Query().Get("type")

	data := PageData{
		Title:    "Home",
		Products: FilterProducts(h.Store.GetAll(), query, typeFilter),
		Query:    query,
	}
	if t, ok := models.LookupUniversityType(typeFilter); ok {
		data.Type = t.String()
	}
	h.render(w, r, "index.html", data)
}

// Read shows a single product. Unknown or missing ids go back to the list.
func (h *PageHandler) Read(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if strings.TrimSpace(id) == "" {
		redirectHome(w, r)
		return
	}
	product := findByID(h.Store.GetAll(), id)
	if product == nil {
		redirectHome(w, r)
		return
	}
	h.render(w, r, "read.html", PageData{Title: product.Title, Product: product, Stars: ratingStars})
}

// DeleteForm asks for confirmation before deleting.
func (h *PageHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if strings.TrimSpace(id) == "" {
		redirectHome(w, r)
		return
	}
	product := findByID(h.Store.GetAll(), id)
	if product == nil {
		redirectHome(w, r)
		return
	}
	h.render(w, r, "delete.html", PageData{Title: "Delete", Product: product})
}

// Delete removes the confirmed product and its image.
func (h *PageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		redirectHome(w, r)
		return
	}
	id := r.PostForm.Get("id")
	if strings.TrimSpace(id) == "" {
		h.SessionManager.AddFlash(w, r, "Invalid product identifier. Deletion aborted.")
		redirectHome(w, r)
		return
	}
	if findByID(h.Store.GetAll(), id) == nil {
		h.SessionManager.AddFlash(w, r, "Product does not exist. No deletion performed.")
		redirectHome(w, r)
		return
	}
	h.Store.Delete(id)
	log.Info().Str("id", id).Msg("product deleted")
	redirectHome(w, r)
}
