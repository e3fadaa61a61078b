package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/Kariqs/decorshop/models"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates email
var files embed.FS

var categoryLabels = map[string]string{
	models.CategorySofa: "مبل",
	models.CategoryDesk: "میز",
	models.CategoryLamp: "چراغ",
}

// Funcs are available to every page and email template.
var Funcs = template.FuncMap{
	"price":         FormatPrice,
	"categoryLabel": func(category string) string { return categoryLabels[category] },
	"lineAt":        lineAt,
}

func lineAt(items []models.LineItem, i int) *models.LineItem {
	if i < 0 || i >= len(items) {
		return nil
	}
	return &items[i]
}

// FormatPrice renders a whole-toman amount with thousands separators.
func FormatPrice(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// Renderer holds one template set per page, each parsed together with the
// shared partials. It implements gin's HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		name := path.Base(page)
		tmpl, err := template.New(name).Funcs(Funcs).ParseFS(files, "templates/partials/*.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		panic(fmt.Sprintf("html template %q is not defined", name))
	}
	return render.HTML{Template: tmpl, Name: name, Data: data}
}

// EmailTemplates parses the templates used for outgoing mail.
func EmailTemplates() (*template.Template, error) {
	return template.New("email").Funcs(Funcs).ParseFS(files, "email/*.html")
}
