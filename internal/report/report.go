// Package report renders the downloadable business report and the HTML
// bodies of outgoing emails.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/bizmodel-ai/backend/internal/catalog"
	"github.com/bizmodel-ai/backend/internal/models"
	"github.com/bizmodel-ai/backend/internal/scoring"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	reportPage   = "report.html"
	resultsPage  = "results_email.html"
	welcomePage  = "welcome_email.html"
	layoutPage   = "templates/layout.html"
	emailMatches = 3
)

// Data is everything a page may show. Matches are ranked best first.
type Data struct {
	Profile     scoring.Inputs
	Matches     []models.BusinessPath
	Top         *models.BusinessPath
	Projection  *models.IncomeProjection
	UserEmail   string
	BaseURL     string
	GeneratedAt time.Time
}

type Renderer struct {
	pages   map[string]*template.Template
	baseURL string
	now     func() time.Time
}

var funcs = template.FuncMap{
	"fitLabel": catalog.FitLabel,
	"money":    money,
	"join":     strings.Join,
}

// NewRenderer parses every page up front so template errors surface at
// startup.
func NewRenderer(baseURL string) (*Renderer, error) {
	r := &Renderer{
		pages:   make(map[string]*template.Template),
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
	for _, page := range []string{reportPage, resultsPage, welcomePage} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, layoutPage, "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Build scores answers against the catalog and collects the report data.
func (r *Renderer) Build(answers *models.QuizAnswers, userEmail string) Data {
	ranked := scoring.Rank(answers)
	d := Data{
		Profile:     scoring.Resolve(answers),
		Matches:     ranked,
		UserEmail:   userEmail,
		BaseURL:     r.baseURL,
		GeneratedAt: r.now(),
	}
	if len(ranked) > 0 {
		top := ranked[0]
		projection := catalog.Projections(top.ID)
		d.Top = &top
		d.Projection = &projection
	}
	return d
}

// Render produces the full business report document.
func (r *Renderer) Render(d Data) ([]byte, error) {
	return r.execute(reportPage, d)
}

// ResultsEmail renders the quiz-results email with the best few matches.
func (r *Renderer) ResultsEmail(d Data) ([]byte, error) {
	if len(d.Matches) > emailMatches {
		d.Matches = d.Matches[:emailMatches]
	}
	return r.execute(resultsPage, d)
}

func (r *Renderer) WelcomeEmail() ([]byte, error) {
	return r.execute(welcomePage, Data{BaseURL: r.baseURL, GeneratedAt: r.now()})
}

func (r *Renderer) execute(page string, d Data) ([]byte, error) {
	t, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %s", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, page, d); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// money formats whole dollars with thousands separators, e.g. $19,350.
func money(v any) string {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		n = int64(x + 0.5)
	default:
		return fmt.Sprint(v)
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String()
}
