// Package docs renders the human-readable description of the calculator API.
package docs

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"nutrition-calculator/internal/apperror"
	"nutrition-calculator/internal/calculator"
	"nutrition-calculator/internal/nutrition"
)

//go:embed docs.html.tmpl
var pageSource string

// Param documents one query parameter.
type Param struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// Page holds everything shown on the documentation page.
type Page struct {
	Params         []Param
	ActivityLevels []nutrition.ActivityLevel
	Goals          []nutrition.Goal
	MinimumAge     int
	Example        string
}

// NewPage describes the current parameter contract.
func NewPage() Page {
	return Page{
		Params: []Param{
			{calculator.ParamAge, "integer", "0", fmt.Sprintf("Age in years, at least %d.", apperror.MinimumAge)},
			{calculator.ParamWeight, "number", "0", "Body weight in kilograms."},
			{calculator.ParamHeight, "number", "0", "Height in centimeters."},
			{calculator.ParamSex, "string", calculator.DefaultSex, `"male" or "m" for the male formula; any other value uses the female formula.`},
			{calculator.ParamActivityLevel, "string", calculator.DefaultActivityLevel, "Daily activity band."},
			{calculator.ParamGoal, "string", calculator.DefaultGoal, "Body-weight goal."},
		},
		ActivityLevels: nutrition.ActivityLevels(),
		Goals:          nutrition.Goals(),
		MinimumAge:     apperror.MinimumAge,
		Example:        "/?age=25&weight=70&height=175&sex=male&activity_level=moderate&goal=maintain",
	}
}

// Renderer serves the documentation page.
type Renderer struct {
	tmpl *template.Template
	page Page
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("docs").Parse(pageSource)
	if err != nil {
		return nil, fmt.Errorf("parse docs template: %w", err)
	}
	return &Renderer{tmpl: tmpl, page: NewPage()}, nil
}

// ServeHTTP renders the page into a buffer first so that template errors
// still produce a clean 500.
func (rd *Renderer) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := rd.tmpl.Execute(&buf, rd.page); err != nil {
		http.Error(w, "failed to render documentation", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
