package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/residence-atlas/pkg/models/domain"
)

type TableConfig struct {
	NameWidth  int
	DaysWidth  int
	ValueWidth int
	UnitWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  32,
		DaysWidth:  10,
		ValueWidth: 12,
		UnitWidth:  6,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, days interface{}, value interface{}, unit string) string {
			return fmt.Sprintf("| %-*s | %*v | %*v | %-*s |",
				c.config.NameWidth, name,
				c.config.DaysWidth, days,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit)
		},
		"formatValue": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.DaysWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2))
		},
	}

	tmpl := `
{{.Title}}{{if .Series}} ({{.Period.Duration}} days){{end}}

{{if .Series}}Active Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}
{{end}}Total Days: {{.TotalDays}}

{{separator}}
{{formatRow .Key "Days" "Value" "Unit"}}
{{separator}}
{{range .Series}}{{formatRow .Label .Days (formatValue .Value) $.AxisLabel}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
