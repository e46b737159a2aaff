package terminal

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
)

const defaultBarWidth = 40

const barTemplate = `
{{.Title}}
{{if .Series}}Period: {{date .Period.Start}} to {{date .Period.End}} ({{.Period.Duration}} days)
{{end}}Total: {{.TotalDays}} days

{{range .Series}}{{label .Label}} | {{bar .Value}} {{value .Value}}
{{else}}No records to show.
{{end}}`

const pieTemplate = `
{{.Title}}
{{if .Series}}Period: {{date .Period.Start}} to {{date .Period.End}} ({{.Period.Duration}} days)
{{end}}Total: {{.TotalDays}} days

{{range .Series}}{{label .Label}} {{share .Value}}
{{else}}No records to show.
{{end}}`

// Reporter draws a report as a text bar or pie chart
type Reporter struct {
	writer   io.Writer
	barWidth int
}

// NewReporter creates a new console chart reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer, barWidth: defaultBarWidth}
}

func (c *Reporter) Handle(report *domain.Report) error {
	labelWidth, maxValue, sum := 0, 0.0, 0.0
	for _, p := range report.Series {
		labelWidth = max(labelWidth, len(p.Label))
		maxValue = max(maxValue, math.Abs(p.Value))
		sum += p.Value
	}

	funcMap := template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"label": func(s string) string {
			return fmt.Sprintf("%-*s", labelWidth, s)
		},
		"bar": func(v float64) string {
			n := 0
			if maxValue > 0 {
				n = int(math.Round(math.Abs(v) / maxValue * float64(c.barWidth)))
			}
			glyph := "█"
			if v < 0 {
				glyph = "░"
			}
			return strings.Repeat(glyph, n) + strings.Repeat(" ", c.barWidth-n)
		},
		"value": func(v float64) string {
			return fmt.Sprintf("%.4g %s", v, report.AxisLabel())
		},
		"share": func(v float64) string {
			if sum == 0 {
				return "n/a"
			}
			return fmt.Sprintf("%5.1f%%", v/sum*100)
		},
	}

	tmpl := barTemplate
	if report.Chart == domain.ChartPie {
		tmpl = pieTemplate
	}

	t, err := template.New("chart").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
