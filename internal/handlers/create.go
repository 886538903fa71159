package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"contosocrafts/internal/models"
	"contosocrafts/internal/sanitize"
	"contosocrafts/internal/upload"
	"contosocrafts/internal/utils"
)

// CreateForm renders an empty product form.
func (h *PageHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "create.html", PageData{Title: "Create", Product: models.NewProduct()})
}

// Create validates the submitted product and stores it under an id derived
// from its title. Every validation problem is reported at once.
func (h *PageHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.render(w, r, "create.html", PageData{Title: "Create", Product: models.NewProduct(), Message: "The form could not be read."})
		return
	}
	product := productFromForm(r)
	product.GraduateDegree = sanitize.CleanList(product.GraduateDegree)
	product.UnderGraduateDegree = sanitize.CleanList(product.UnderGraduateDegree)
	product.Campuses = sanitize.CleanList(product.Campuses)

	var errs sanitize.Errors
	h.Validator.ValidateStruct(&errs, "Product", product)
	sanitize.ValidateCampuses(&errs, "Product.Campuses", product.Campuses)
	sanitize.ValidateDegrees(&errs, "Product.UnderGraduateDegree", product.UnderGraduateDegree, "Undergraduate degree")
	sanitize.ValidateDegrees(&errs, "Product.GraduateDegree", product.GraduateDegree, "Graduate degree")
	if !errs.Valid() {
		h.render(w, r, "create.html", PageData{Title: "Create", Product: product, Errors: errs})
		return
	}

	product.ID = utils.GenerateID(product.Title)
	h.Store.Create(product)
	log.Info().Str("id", product.ID).Str("title", product.Title).Msg("product created")
	redirectHome(w, r)
}

// UploadImage godoc
// @Summary      Upload a product image
// @Description  Stores a PNG or JPEG image (max 2 MB) named after the product title
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file    true   "Image file (PNG/JPEG)"
// @Param        title  formData  string  false  "Product title used for the file name"
// @Success      200  {object}  upload.Result
// @Router       /Product/Create/upload-image [post]
func (h *PageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusOK, upload.Result{Error: upload.Message(upload.ErrTooLarge)})
			return
		}
		writeJSON(w, http.StatusOK, upload.Result{Error: upload.Message(upload.ErrNoFile)})
		return
	}
	writeJSON(w, http.StatusOK, h.Uploads.UploadImage(formFile(r, "image"), r.FormValue("title")))
}

// DeleteImage godoc
// @Summary      Delete an uploaded product image
// @Description  Removes an image previously stored under /images/
// @Tags         images
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        imagePath  formData  string  true  "Web path of the image, e.g. /images/UW_20240101000000.png"
// @Success      200  {object}  upload.Result
// @Router       /Product/Create/delete-image [post]
func (h *PageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		writeJSON(w, http.StatusOK, upload.Result{Error: upload.Message(upload.ErrNoPath)})
		return
	}
	writeJSON(w, http.StatusOK, h.Uploads.DeleteImage(r.FormValue("imagePath")))
}
