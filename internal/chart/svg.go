package chart

import (
	"bufio"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVG geometry in pixels. The plot occupies Chart.Height; the axis band
// below it holds tick labels and the now annotation.
const (
	svgWidth      = 1200
	svgLabelWidth = 320
	svgRightPad   = 20
	svgTop        = 40
	svgRowHeight  = 20
	svgBarHeight  = 14
	svgAxisBand   = 40
)

func attr(name string, value any) string {
	return fmt.Sprintf(`%s="%v"`, name, value)
}

// WriteSVG writes the chart as a standalone SVG document.
func WriteSVG(w io.Writer, c *Chart) error {
	plotX := svgLabelWidth + 10
	plotRight := svgWidth - svgRightPad
	plotW := float64(plotRight - plotX)
	x := func(at float64) int { return int(math.Round(float64(plotX) + at*plotW)) }
	total := c.Height + svgAxisBand

	bw := bufio.NewWriter(w)
	canvas := svg.New(bw)
	canvas.Start(svgWidth, total,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, svgWidth, total),
		attr("font-family", "sans-serif"),
		attr("font-size", 12))
	canvas.Title(c.Title)
	canvas.Rect(0, 0, svgWidth, total, attr("fill", "white"))
	canvas.Text(plotX, 24, c.Title, attr("font-size", 16), attr("font-weight", "bold"))

	for _, at := range c.Boundaries {
		bx := x(c.Position(at))
		canvas.Line(bx, svgTop, bx, c.Height, attr("stroke", "#999999"), attr("stroke-width", 1))
	}

	for i, b := range c.Bars {
		x0, x1 := x(c.Position(b.Start)), x(c.Position(b.End))
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		width := max(x1-x0, 1)
		top := svgTop + i*svgRowHeight + (svgRowHeight-svgBarHeight)/2

		canvas.Text(svgLabelWidth, top+svgBarHeight-3, b.Label, attr("text-anchor", "end"))
		canvas.Group()
		canvas.Title(b.Label + ": " + string(b.Status))
		canvas.Rect(x0, top, width, svgBarHeight, attr("fill", b.Color.Name))
		canvas.Gend()
	}

	canvas.Line(plotX, c.Height, plotRight, c.Height, attr("stroke", "#333333"), attr("stroke-width", 1))
	for _, t := range c.Ticks {
		tx := x(c.Position(t.At))
		canvas.Line(tx, c.Height, tx, c.Height+5, attr("stroke", "#333333"), attr("stroke-width", 1))
		canvas.Text(tx, c.Height+17, t.Label, attr("text-anchor", "middle"))
	}

	nowX := x(c.Position(c.Now))
	canvas.Line(nowX, svgTop, nowX, c.Height, attr("stroke", NowColor.Name), attr("stroke-width", 2))
	canvas.Text(nowX, c.Height+33, c.NowLabel,
		attr("text-anchor", "middle"), attr("font-size", 10), attr("fill", NowColor.Name))
	canvas.End()

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}
