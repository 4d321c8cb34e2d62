package api

import (
	"embed"
	"html/template"
	"io"
	"math"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/hcdash/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type templateRenderer struct {
	templates *template.Template
}

func newRenderer() (*templateRenderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"barWidth":  barWidth,
		"toneClass": toneClass,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &templateRenderer{templates: t}, nil
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func toneClass(t domain.Tone) string {
	return "tone-" + string(t)
}

// barWidth scales v against the largest magnitude in the chart, as a CSS percentage.
func barWidth(chart domain.Chart, v float64) float64 {
	var peak float64
	for _, s := range chart.Series {
		for _, x := range s.Values {
			peak = math.Max(peak, math.Abs(x))
		}
	}
	if peak == 0 {
		return 0
	}
	return math.Round(math.Abs(v) / peak * 100)
}
