package cmd

import (
	"fmt"

	"github.com/nibzard/ganttboard/internal/schedule"
)

// exportCommand writes the cleaned schedule as a CSV snapshot, the same file
// the editor's save action produces.
func exportCommand(args []string) error {
	fs := newFlagSet("export")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	logger := commandLogger(cfg)
	table, _, err := loadSchedule(cfg, logger)
	if err != nil {
		return err
	}

	if err := schedule.SaveCSV(cfg.OutputFile, table, now()); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	logger.Info("snapshot saved", "path", cfg.OutputFile, "rows", table.Len())
	fmt.Fprintf(stdout, "Wrote %d tasks to %s\n", table.Len(), cfg.OutputFile)
	return nil
}
