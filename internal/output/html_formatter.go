package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	calc "github.com/rpgo/savings-projector/internal/calculation"
	"github.com/rpgo/savings-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
}).Parse(htmlTemplateSource))

// Chart geometry in SVG user units.
const (
	chartWidth   = 720
	chartHeight  = 320
	chartPadding = 40
)

// svgChart is the pre-computed geometry handed to the template.
type svgChart struct {
	Width, Height int
	Points        string
	RetirementX   float64
	MaxLabel      string
	FirstAge      int
	LastAge       int
}

func buildSVGChart(series []domain.AgePoint, retirementAge int) *svgChart {
	if len(series) == 0 {
		return nil
	}
	maxVal := 0.0
	for _, pt := range series {
		if v := pt.Balance.InexactFloat64(); v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	firstAge, lastAge := series[0].Age, series[len(series)-1].Age
	span := float64(lastAge - firstAge)
	if span == 0 {
		span = 1
	}
	x := func(age int) float64 { return chartPadding + float64(age-firstAge)/span*plotW }

	pts := make([]string, 0, len(series))
	for _, pt := range series {
		y := chartPadding + plotH - pt.Balance.InexactFloat64()/maxVal*plotH
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", x(pt.Age), y))
	}
	return &svgChart{
		Width:       chartWidth,
		Height:      chartHeight,
		Points:      strings.Join(pts, " "),
		RetirementX: x(retirementAge),
		MaxLabel:    formatChartLabel(maxVal),
		FirstAge:    firstAge,
		LastAge:     lastAge,
	}
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ProjectionReport
		Analysis      Analysis
		Assumptions   []string
		Chart         *svgChart
		Threshold     string
		Generated     string
		DepletionNote string
	}{
		ProjectionReport: report,
		Analysis:         AnalyzeProjection(report),
		Assumptions:      GenerateAssumptions(report.Profile),
		Chart:            buildSVGChart(report.Series, report.Profile.RetirementAge),
		Threshold:        FormatCurrency(calc.RecommendationThreshold),
		Generated:        generatedStamp(report.GeneratedAt),
	}
	if age := data.Analysis.DepletionAge; age > 0 && age < report.Profile.LifeExpectancy {
		data.DepletionNote = depletionNote(age)
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
