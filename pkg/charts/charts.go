// Package charts renders the analysis dashboard: a 2x2 panel of category
// frequencies, source shares, monthly volume and score distribution. Chart
// output is strictly optional, a render failure never blocks the text
// report.
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"mailprobe/pkg/domain"
)

const (
	panelWidth   = 600
	panelHeight  = 400
	maxPieSlices = 8
	histBuckets  = 20
)

// Save renders the dashboard PNG into dir, named with the same timestamp
// as the report it accompanies, and returns the path.
func Save(stats domain.Statistics, dir string, ts time.Time) (string, error) {
	img, err := render(stats)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("mailprobe_charts_%s.png", ts.Format("20060102_1504")))
	f, err := os.Create(path) //nolint:gosec // path derives from configured output dir
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close() //nolint:errcheck // error checked on encode

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode chart: %w", err)
	}
	return path, f.Close()
}

// render draws the four panels and composites them into one image
func render(stats domain.Statistics) (image.Image, error) {
	if stats.TotalPosts == 0 {
		return nil, fmt.Errorf("no data to chart")
	}

	panels := []struct {
		name string
		fn   func(domain.Statistics) (image.Image, error)
	}{
		{"problem frequency", problemBars},
		{"source share", sourcePie},
		{"monthly volume", monthlyLine},
		{"score distribution", scoreHistogram},
	}

	dst := image.NewRGBA(image.Rect(0, 0, 2*panelWidth, 2*panelHeight))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	for i, p := range panels {
		img, err := p.fn(stats)
		if err != nil {
			return nil, fmt.Errorf("render %s panel: %w", p.name, err)
		}
		x := (i % 2) * panelWidth
		y := (i / 2) * panelHeight
		rect := image.Rect(x, y, x+panelWidth, y+panelHeight)
		draw.Draw(dst, rect, img, img.Bounds().Min, draw.Src)
	}
	return dst, nil
}

// problemBars charts the percentage of posts per problem category
func problemBars(stats domain.Statistics) (image.Image, error) {
	bars := make([]chart.Value, 0, len(stats.Problems))
	for _, p := range stats.Problems {
		bars = append(bars, chart.Value{Label: p.Name, Value: p.Percentage})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no categories")
	}

	c := chart.BarChart{
		Title:    "Email Problems by Frequency (%)",
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 40,
		Bars:     bars,
	}
	return decode(c.Render)
}

// sourcePie charts the post share of the most active sources
func sourcePie(stats domain.Statistics) (image.Image, error) {
	counts := stats.SourceCounts
	if len(counts) > maxPieSlices {
		counts = counts[:maxPieSlices]
	}
	values := make([]chart.Value, 0, len(counts))
	for _, s := range counts {
		values = append(values, chart.Value{Label: s.Source, Value: float64(s.Count)})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no sources")
	}

	c := chart.PieChart{
		Title:  "Posts by Source",
		Width:  panelWidth,
		Height: panelHeight,
		Values: values,
	}
	return decode(c.Render)
}

// monthlyLine charts post counts over time
func monthlyLine(stats domain.Statistics) (image.Image, error) {
	monthly := stats.Monthly
	if len(monthly) == 0 {
		return nil, fmt.Errorf("no monthly counts")
	}
	if len(monthly) == 1 {
		// a single point has no x-range; pad with an empty preceding month
		prev := domain.MonthCount{Month: monthly[0].Month.AddDate(0, -1, 0)}
		monthly = []domain.MonthCount{prev, monthly[0]}
	}

	xs := make([]time.Time, 0, len(monthly))
	ys := make([]float64, 0, len(monthly))
	for _, m := range monthly {
		xs = append(xs, m.Month)
		ys = append(ys, float64(m.Count))
	}

	c := chart.Chart{
		Title:  "Posts Over Time",
		Width:  panelWidth,
		Height: panelHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "posts", XValues: xs, YValues: ys},
		},
	}
	return decode(c.Render)
}

// scoreHistogram buckets post scores into a fixed number of bins
func scoreHistogram(stats domain.Statistics) (image.Image, error) {
	if len(stats.Scores) == 0 {
		return nil, fmt.Errorf("no scores")
	}

	minScore, maxScore := stats.Scores[0], stats.Scores[0]
	for _, s := range stats.Scores {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}

	buckets := histBuckets
	if maxScore == minScore {
		buckets = 1
	}
	width := float64(maxScore-minScore) / float64(buckets)
	if width == 0 {
		width = 1
	}

	counts := make([]int, buckets)
	for _, s := range stats.Scores {
		idx := int(float64(s-minScore) / width)
		if idx >= buckets {
			idx = buckets - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, 0, buckets)
	for i, n := range counts {
		label := fmt.Sprintf("%d", minScore+int(float64(i)*width))
		bars = append(bars, chart.Value{Label: label, Value: float64(n)})
	}

	c := chart.BarChart{
		Title:    "Post Score Distribution",
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 20,
		Bars:     bars,
	}
	return decode(c.Render)
}

// decode renders a chart to PNG bytes and decodes it back to an image for
// compositing
func decode(render func(rp chart.RendererProvider, w io.Writer) error) (image.Image, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode panel: %w", err)
	}
	return img, nil
}
