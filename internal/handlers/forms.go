package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"contosocrafts/internal/models"
	"contosocrafts/internal/upload"
)

// productFromForm binds the product form fields onto a fresh product.
// Fields missing from the form keep the defaults of models.NewProduct; a
// department count that does not parse becomes 0 so validation rejects it.
func productFromForm(r *http.Request) *models.Product {
	p := models.NewProduct()
	form := r.PostForm

	p.Title = form.Get("title")
	p.Description = form.Get("description")
	p.URL = form.Get("url")
	p.Location = form.Get("location")
	p.Image = form.Get("img")
	p.Maker = form.Get("maker")
	p.TypeOfUniversity = models.ParseUniversityType(form.Get("typeOfUniversity"))

	if raw, ok := form["numberOfDepartments"]; ok && len(raw) > 0 {
		n, err := strconv.Atoi(strings.TrimSpace(raw[0]))
		if err != nil {
			n = 0
		}
		p.NumberOfDepartments = n
	}
	p.HasOnlinePrograms = formBool(form.Get("hasOnlinePrograms"))

	if v, ok := form["graduateDegree"]; ok {
		p.GraduateDegree = v
	}
	if v, ok := form["undergraduateDegree"]; ok {
		p.UnderGraduateDegree = v
	}
	if v, ok := form["campuses"]; ok {
		p.Campuses = v
	}
	return p
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}

// formFile returns the first file posted under field, or nil.
func formFile(r *http.Request, field string) upload.File {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil
	}
	return upload.FromMultipart(headers[0])
}
