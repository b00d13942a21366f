// Package chart renders aggregates as self-contained HTML charts.
package chart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"title-lens/summary"
)

// Bar renders a ranked distribution as a vertical bar chart.
func Bar(title, xLabel string, buckets []summary.Bucket, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Titles"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
	)

	labels := make([]string, 0, len(buckets))
	data := make([]opts.BarData, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.Label)
		data = append(data, opts.BarData{Value: b.Count})
	}

	bar.SetXAxis(labels)
	bar.AddSeries("Titles", data)

	return render(bar, path)
}

// GroupedBar renders a grouped distribution with one bar series per group.
func GroupedBar(title, xLabel string, grouped summary.Grouped, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Titles"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
	)

	bar.SetXAxis(grouped.Labels)
	for _, s := range grouped.Series {
		data := make([]opts.BarData, 0, len(s.Counts))
		for _, c := range s.Counts {
			data = append(data, opts.BarData{Value: c})
		}
		bar.AddSeries(s.Name, data)
	}

	return render(bar, path)
}

// Line renders a year trend as a line chart over a continuous year axis.
func Line(title string, trend []summary.YearCount, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Titles"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title}),
	)

	years := make([]string, 0, len(trend))
	data := make([]opts.LineData, 0, len(trend))
	for _, yc := range trend {
		years = append(years, strconv.Itoa(yc.Year))
		data = append(data, opts.LineData{Value: yc.Count})
	}

	line.SetXAxis(years)
	line.AddSeries("Titles", data)

	return render(line, path)
}

type renderer interface {
	Render(w io.Writer) error
}

func render(c renderer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create chart directory: %v", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %v", err)
	}
	defer file.Close()

	if err := c.Render(file); err != nil {
		return fmt.Errorf("failed to render chart: %v", err)
	}
	return nil
}
