package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/ganttboard/internal/chart"
)

const defaultChartWidth = 100

// chartCommand prints the Gantt chart or writes it as SVG.
func chartCommand(args []string) error {
	// Parse chart-specific flags
	fs := newFlagSet("chart")
	width := fs.Int("width", defaultChartWidth, "Terminal chart width in columns")
	svgPath := fs.String("svg", "", "Write the chart as SVG to this path")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if *width <= 0 {
		return fmt.Errorf("invalid width %d, must be positive", *width)
	}

	logger := commandLogger(cfg)
	table, _, err := loadSchedule(cfg, logger)
	if err != nil {
		return err
	}

	current := now()
	c := chart.Build(table.Rows(current, cfg.NameLimit), cfg.TimeScale(), current)

	if *svgPath == "" {
		fmt.Fprint(stdout, chart.RenderText(c, *width))
		return nil
	}

	path := *svgPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ProjectRoot, path)
	}
	if err := writeSVGFile(path, c); err != nil {
		return err
	}
	logger.Info("chart written", "path", path, "bars", len(c.Bars), "scale", c.Scale)
	fmt.Fprintf(stdout, "Wrote SVG chart to %s\n", path)
	return nil
}

func writeSVGFile(path string, c *chart.Chart) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := chart.WriteSVG(f, c); err != nil {
		f.Close()
		return fmt.Errorf("write chart: %w", err)
	}
	return f.Close()
}
