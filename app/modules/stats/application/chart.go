package statsservice

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	team1Color  = drawing.ColorFromHex("c0392b")
	team2Color  = drawing.ColorFromHex("2e86c1")
	targetColor = drawing.ColorFromHex("7f8c8d")
)

// renderHistoryChart draws both teams' running totals against the target score.
func renderHistoryChart(h *ScoreHistory, target int, w io.Writer) error {
	xs := make([]float64, len(h.Points))
	team1 := make([]float64, len(h.Points))
	team2 := make([]float64, len(h.Points))

	lo, hi := 0.0, float64(target)
	for i, p := range h.Points {
		xs[i] = float64(p.HandNumber)
		team1[i] = float64(p.Team1)
		team2[i] = float64(p.Team2)
		lo = min(lo, team1[i], team2[i])
		hi = max(hi, team1[i], team2[i])
	}
	lastHand := max(xs[len(xs)-1], 1)

	graph := chart.Chart{
		Title:  h.Team1Name + " vs " + h.Team2Name,
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "Hand",
			Range: &chart.ContinuousRange{Min: 0, Max: lastHand},
		},
		YAxis: chart.YAxis{
			Name:  "Score",
			Range: &chart.ContinuousRange{Min: lo, Max: hi + 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    h.Team1Name,
				XValues: xs,
				YValues: team1,
				Style:   chart.Style{StrokeColor: team1Color, StrokeWidth: 2, DotWidth: 3, DotColor: team1Color},
			},
			chart.ContinuousSeries{
				Name:    h.Team2Name,
				XValues: xs,
				YValues: team2,
				Style:   chart.Style{StrokeColor: team2Color, StrokeWidth: 2, DotWidth: 3, DotColor: team2Color},
			},
			chart.ContinuousSeries{
				Name:    "Target",
				XValues: []float64{0, lastHand},
				YValues: []float64{float64(target), float64(target)},
				Style:   chart.Style{StrokeColor: targetColor, StrokeDashArray: []float64{5, 5}},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}
