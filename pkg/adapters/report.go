package adapters

import (
	"github.com/de-tools/residence-atlas/pkg/models/api"
	"github.com/de-tools/residence-atlas/pkg/models/domain"
)

func MapReportDomainToApi(report *domain.Report) api.Report {
	apiReport := api.Report{
		Title:     report.Title,
		Key:       report.Key,
		Unit:      string(report.Unit),
		Chart:     string(report.Chart),
		Period:    MapTimePeriodDomainToApi(report.Period),
		Series:    []api.DataPoint{},
		TotalDays: report.TotalDays,
	}

	for _, p := range report.Series {
		apiReport.Series = append(apiReport.Series, MapDataPointDomainToApi(p))
	}

	return apiReport
}

func MapTimePeriodDomainToApi(p domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{
		Start:    p.Start,
		End:      p.End,
		Duration: p.Duration,
	}
}

func MapDataPointDomainToApi(p domain.DataPoint) api.DataPoint {
	return api.DataPoint{
		Label: p.Label,
		Value: p.Value,
		Days:  p.Days,
	}
}
