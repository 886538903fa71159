package handlers

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"contosocrafts/internal/models"
	"contosocrafts/internal/sanitize"
	"contosocrafts/internal/upload"
)

const (
	msgRequiredFields = "All required fields must be filled before updating."
	msgAlreadyDeleted = "Could not update. The product was already deleted."
	msgUpdateFailed   = "Update failed. Product not found."
)

// UpdateForm loads the product to edit by exact id.
func (h *PageHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	product := findByID(h.Store.GetAll(), r.URL.Query().Get("id"))
	if product == nil {
		redirectHome(w, r)
		return
	}
	h.render(w, r, "update.html", PageData{Title: "Update", Product: product})
}

// Update applies an edit. Checks run in a fixed order and the first failing
// step redisplays the form:
//
//  1. struct validation of the url and department count
//  2. blank id goes back to the list
//  3. lists are cleaned
//  4. required fields (a posted file stands in for the image)
//  5. length ceilings
//  6. campuses
//  7. the product must still exist, otherwise the list shows a flash message
//  8. an uploaded file replaces the current image
//
// The previous image is only removed once every check has passed.
func (h *PageHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		if isTooLarge(err) {
			h.render(w, r, "update.html", PageData{Title: "Update", Product: models.NewProduct(), Message: upload.Message(upload.ErrTooLarge)})
			return
		}
		redirectHome(w, r)
		return
	}
	product := productFromForm(r)
	product.ID = r.PostForm.Get("id")

	redisplay := func(errs sanitize.Errors) {
		h.render(w, r, "update.html", PageData{Title: "Update", Product: product, Errors: errs})
	}

	var errs sanitize.Errors
	h.Validator.ValidateStruct(&errs, "Product", product, updateCheckedFields...)
	if !errs.Valid() {
		redisplay(errs)
		return
	}

	if strings.TrimSpace(product.ID) == "" {
		redirectHome(w, r)
		return
	}

	product.GraduateDegree = sanitize.CleanList(product.GraduateDegree)
	product.UnderGraduateDegree = sanitize.CleanList(product.UnderGraduateDegree)
	product.Campuses = sanitize.CleanList(product.Campuses)

	file := formFile(r, "upload")
	if file != nil && file.Size() <= 0 {
		file = nil
	}

	if !requiredFieldsPresent(product, file != nil) {
		errs.Add("", msgRequiredFields)
		redisplay(errs)
		return
	}

	if field, msg := firstLengthViolation(product); field != "" {
		errs.Add(field, msg)
		redisplay(errs)
		return
	}

	if !sanitize.ValidateCampusesFirst(&errs, "Product.Campuses", product.Campuses) {
		redisplay(errs)
		return
	}

	if !existsFold(h.Store.GetAll(), product.ID) {
		h.SessionManager.AddFlash(w, r, msgAlreadyDeleted)
		redirectHome(w, r)
		return
	}

	if file != nil {
		path, err := h.Uploads.Replace(file, product.Title, product.Image)
		if err != nil {
			log.Warn().Err(err).Str("id", product.ID).Msg("image replacement failed")
			errs.Add("Upload", upload.Message(err))
			redisplay(errs)
			return
		}
		product.Image = path
	}

	if !h.Store.Update(product) {
		errs.Add("", msgUpdateFailed)
		redisplay(errs)
		return
	}
	log.Info().Str("id", product.ID).Msg("product updated")
	redirectHome(w, r)
}

// updateCheckedFields are validated by the ordered update checks instead of
// the struct tags.
var updateCheckedFields = []string{"Title", "Description", "Location", "Image"}

func requiredFieldsPresent(p *models.Product, hasUpload bool) bool {
	for _, v := range []string{p.Title, p.Description, p.URL, p.Location} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return hasUpload || strings.TrimSpace(p.Image) != ""
}

func firstLengthViolation(p *models.Product) (string, string) {
	switch {
	case utf8.RuneCountInString(p.Title) > 55:
		return "Product.Title", "Title cannot exceed 55 characters."
	case utf8.RuneCountInString(p.Location) > 55:
		return "Product.Location", "Location cannot exceed 55 characters."
	case utf8.RuneCountInString(p.Description) > 500:
		return "Product.Description", "Description cannot exceed 500 characters."
	}
	return "", ""
}

// existsFold reports whether a product with id exists, ignoring case and
// surrounding whitespace.
func existsFold(products []*models.Product, id string) bool {
	id = strings.TrimSpace(id)
	for _, p := range products {
		if p != nil && strings.EqualFold(strings.TrimSpace(p.ID), id) {
			return true
		}
	}
	return false
}
