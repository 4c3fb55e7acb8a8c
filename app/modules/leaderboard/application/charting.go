package leaderboardservice

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette colors the leaderboard chart.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Leader     drawing.Color
	TextColor  drawing.Color
}

// DefaultChartPalette is the palette used by the chart handler.
var DefaultChartPalette = ChartPalette{
	Background: drawing.Color{R: 18, G: 18, B: 19, A: 255},
	Bar:        drawing.Color{R: 120, G: 124, B: 126, A: 255},
	Leader:     drawing.Color{R: 106, G: 170, B: 100, A: 255},
	TextColor:  drawing.Color{R: 255, G: 255, B: 255, A: 255},
}

const (
	chartHeight     = 400
	chartMinWidth   = 400
	chartBarWidth   = 60
	chartBarSpacing = 30
)

// GenerateLeaderboardChart produces a PNG bar chart of the participants' averages.
func GenerateLeaderboardChart(board *Leaderboard, palette ChartPalette) ([]byte, error) {
	if board == nil || board.NotStarted || len(board.Entries) == 0 {
		return renderNoDataPlaceholder(palette, "No scores to chart yet")
	}

	bars := make([]chart.Value, len(board.Entries))
	highest := 0.0
	for i, entry := range board.Entries {
		color := palette.Bar
		if entry.Rank == 1 {
			color = palette.Leader
		}
		bars[i] = chart.Value{
			Label: entry.DisplayName,
			Value: entry.Average,
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		}
		highest = math.Max(highest, entry.Average)
	}

	width := len(bars)*(chartBarWidth+chartBarSpacing) + 2*chartBarSpacing
	if width < chartMinWidth {
		width = chartMinWidth
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Average score, day %d of %d", board.DaysElapsed, board.Tournament.DurationDays()),
		Width:      width,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		TitleStyle: chart.Style{
			FontColor: palette.TextColor,
		},
		Background: chart.Style{
			FillColor: palette.Background,
			Padding: chart.Box{
				Top: 40,
			},
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.Style{
			FontColor: palette.TextColor,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
			// An explicit range keeps a chart of equal averages from collapsing to zero height.
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: math.Ceil(highest) + 1,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	hidden := chart.Style{Hidden: true}
	graph := chart.Chart{
		Width:  chartMinWidth,
		Height: chartHeight / 2,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: hidden},
		YAxis: chart.YAxis{Style: hidden},
		// Chart refuses to render without a series.
		Series: []chart.Series{
			chart.ContinuousSeries{Style: hidden, XValues: []float64{0, 1}, YValues: []float64{0, 1}},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
