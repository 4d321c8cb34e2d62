// Package report prints a hospital dashboard as a styled terminal report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/ougirez/hcdash/internal/domain"
)

var (
	colorPositive = lipgloss.Color("#10b981")
	colorNegative = lipgloss.Color("#ef4444")
	colorWarning  = lipgloss.Color("#f59e0b")
	colorAccent   = lipgloss.Color("#3b82f6")
	colorMuted    = lipgloss.Color("#6b7280")
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	muted   lipgloss.Style
	card    lipgloss.Style
	label   lipgloss.Style
	body    lipgloss.Style
	tones   map[domain.Tone]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		section: r.NewStyle().Bold(true).Underline(true).MarginTop(1),
		muted:   r.NewStyle().Foreground(colorMuted),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1),
		label:   r.NewStyle().Bold(true),
		body:    r.NewStyle().Width(80),
		tones: map[domain.Tone]lipgloss.Style{
			domain.TonePositive: r.NewStyle().Foreground(colorPositive),
			domain.ToneNegative: r.NewStyle().Foreground(colorNegative),
			domain.ToneWarning:  r.NewStyle().Foreground(colorWarning),
			domain.ToneNeutral:  r.NewStyle(),
		},
	}
}

func (s styles) tone(t domain.Tone, text string) string {
	return s.tones[t].Render(text)
}

// Render writes d to w. Colors follow the terminal behind w unless color is false.
func Render(w io.Writer, d *domain.Dashboard, color bool) error {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	s := newStyles(r)

	blocks := []string{
		header(s, d),
		financial(s, d.Financial),
		departments(s, d.Departments),
		labor(s, d.Labor),
		insights(s, d),
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
	return err
}

func header(s styles, d *domain.Dashboard) string {
	var b strings.Builder
	b.WriteString(s.title.Render(d.Title) + "\n")
	b.WriteString(s.muted.Render(d.Location) + "\n\n")
	b.WriteString(s.body.Render(d.Summary) + "\n\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n", s.label.Render("Beds:"), d.Stats.Beds, s.label.Render("Type:"), d.Stats.Type)
	fmt.Fprintf(&b, "%s %s", s.label.Render("Specialties:"), strings.Join(d.Stats.Specialties, ", "))
	return b.String()
}

func banner(s styles, b domain.Banner) string {
	return s.card.Render(s.tone(b.Tone, b.Title) + "\n" + b.Detail)
}

func financial(s styles, f domain.FinancialSection) string {
	rows := []string{s.section.Render("Financial Performance")}

	h := f.Highlights
	rows = append(rows, fmt.Sprintf("Total income %d: %s (%s)",
		h.LatestYear, s.tone(h.TotalIncomeTone, h.TotalIncomeText), s.tone(h.IncomeChangeTone, h.IncomeChangeText)))
	rows = append(rows, fmt.Sprintf("Cost-to-charge ratio: %s, %s", h.CostToChargeText, h.CostToChargeTrend))
	rows = append(rows, "Medicaid revenue: "+h.MedicaidRevenueText, "")

	for _, y := range f.Years {
		rows = append(rows, fmt.Sprintf("%s  total %s  net %s  CCR %s  Medicaid %s (from %s in charges)",
			s.label.Render(fmt.Sprint(y.Year)),
			s.tone(y.TotalIncomeTone, y.TotalIncomeText),
			s.tone(y.NetIncomeTone, y.NetIncomeText),
			y.CostToChargeText, y.MedicaidRevenueText, y.MedicaidChargesText))
		for _, b := range y.Banners {
			rows = append(rows, banner(s, b))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func departments(s styles, d domain.DepartmentSection) string {
	rows := []string{s.section.Render("Department Costs")}
	for _, c := range d.Categories {
		values := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			values = append(values, fmt.Sprintf("%d %s", v.Year, v.Text))
		}
		rows = append(rows, fmt.Sprintf("%s: %s", s.label.Render(c.Title), strings.Join(values, "  ")))
		rows = append(rows, s.muted.Render("  "+c.Note))
	}

	totals := make([]string, 0, len(d.TotalCosts))
	for _, v := range d.TotalCosts {
		totals = append(totals, v.Text)
	}
	rows = append(rows, "Total costs: "+strings.Join(totals, " -> "), "")

	for _, c := range d.TopCategories {
		rows = append(rows, fmt.Sprintf("%-22s %10s  %s", c.Name, c.CurrentText, s.tone(c.GrowthTone, c.GrowthText)))
	}
	rows = append(rows, "")
	for _, sl := range d.Distribution {
		rows = append(rows, fmt.Sprintf("%-22s %6s", sl.Name, sl.ShareText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func labor(s styles, l domain.LaborSection) string {
	rows := []string{s.section.Render("Labor Analysis")}
	rows = append(rows, fmt.Sprintf("FTEs: %s (%s)", l.Highlights.FTEsText, s.tone(l.Highlights.FTEChangeTone, l.Highlights.FTEChangeText)))
	rows = append(rows, fmt.Sprintf("Contract labor: %s, %s", l.Highlights.ContractLaborText, l.Highlights.ContractShareText))
	if l.ContractLaborAlert != nil {
		rows = append(rows, banner(s, *l.ContractLaborAlert))
	}
	for _, y := range l.Years {
		rows = append(rows, fmt.Sprintf("%d  FTEs %-8s contract %-8s %6s of %s",
			y.Year, y.FTEsText, y.ContractLaborText, y.PercentageText, y.TotalCostText))
	}

	points := []string{s.tone(l.Insight.Tone, l.Insight.Title)}
	for _, p := range l.Insight.Points {
		if p.Title == "" {
			points = append(points, p.Text)
			continue
		}
		points = append(points, s.label.Render(p.Title+": ")+p.Text)
	}
	rows = append(rows, s.card.Width(80).Render(strings.Join(points, "\n")))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func insights(s styles, d *domain.Dashboard) string {
	rows := []string{s.section.Render("Key Insights")}
	for _, c := range d.Insights.CostDrivers {
		rows = append(rows, "  • "+c)
	}
	for _, p := range d.Insights.StaffingPatterns {
		rows = append(rows, "  • "+p)
	}

	rows = append(rows, s.section.Render("Key Takeaways"))
	for _, t := range d.Takeaways {
		rows = append(rows, s.label.Render(t.Title)+": "+t.Text)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
