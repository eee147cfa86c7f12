package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"culler/internal/config"
	"culler/internal/history"
	"culler/internal/logging"
	"culler/internal/workflow"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Run one scan/cull cycle now",
		Long: "Runs a single scan cycle against the configured roots (or the given " +
			"path), removes later duplicates, and records the run in history.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				root, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}
				cfg.Paths.Roots = []string{root}
				// The substituted root must pass the same containment checks
				// as configured roots.
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if dryRun {
				cfg.Cull.DryRun = true
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				mgr := workflow.NewManager(cfg, store, logger)
				run, err := mgr.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				printRunSummary(cmd, run)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report duplicates without deleting")
	return cmd
}

func printRunSummary(cmd *cobra.Command, run *history.Run) {
	verb := "removed"
	if run.DryRun {
		verb = "would remove"
	}
	cmd.Printf("run %s: scanned %d files, %s %d duplicates (%s reclaimed)\n",
		shortID(run.ID), run.FilesScanned, verb, run.FilesDeleted,
		humanize.Bytes(uint64(run.BytesReclaimed)))
	if run.ReportPath != "" {
		cmd.Printf("report: %s\n", run.ReportPath)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
