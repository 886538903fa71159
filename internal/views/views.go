// Package views embeds the HTML page templates and the script and stylesheet
// they load.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"contosocrafts/internal/models"
	"contosocrafts/internal/sanitize"
)

//go:embed *.html
var FS embed.FS

//go:embed static
var staticFS embed.FS

// StaticPaths are the bundled assets, as served by Assets.
var StaticPaths = []string{"/js/site.js", "/css/site.css"}

// Funcs are the helpers available to every page.
var Funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"img": func(u string) string {
		s := strings.TrimSpace(u)
		if s == "" {
			return s
		}
		s = strings.ReplaceAll(s, "\\", "/")
		if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "/") {
			s = "/" + s
		}
		return strings.ReplaceAll(s, " ", "%20")
	},
	"avg": func(p *models.Product) string {
		mean, votes := p.AverageRating()
		if votes == 0 {
			return "Be the first to vote!"
		}
		noun := "Votes"
		if votes == 1 {
			noun = "Vote"
		}
		return fmt.Sprintf("%.1f (%d %s)", mean, votes, noun)
	},
	"flagClass": func(t models.UniversityType) string {
		return "flag-" + strings.ToLower(t.String())
	},
	"errorsFor": func(errs sanitize.Errors, field string) []string {
		return errs.For(field)
	},
	"join": strings.Join,
}

// Parse loads every embedded page.
func Parse() (*template.Template, error) {
	return template.New("layout").Funcs(Funcs).ParseFS(FS, "*.html")
}

// Assets serves the bundled files under static/ at their StaticPaths.
func Assets() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
