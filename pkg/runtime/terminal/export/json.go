package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/de-tools/residence-atlas/pkg/adapters"
	"github.com/de-tools/residence-atlas/pkg/models/domain"
)

// JSONReporter writes each report in the web API representation, one document per report.
type JSONReporter struct {
	encoder *json.Encoder
}

func NewJSONReporter(writer io.Writer) *JSONReporter {
	if writer == nil {
		writer = os.Stdout
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return &JSONReporter{encoder: enc}
}

func (j *JSONReporter) Handle(report *domain.Report) error {
	return j.encoder.Encode(adapters.MapReportDomainToApi(report))
}
