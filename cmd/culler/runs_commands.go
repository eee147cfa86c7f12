package main

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"culler/internal/config"
	"culler/internal/history"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded scan runs",
	}
	cmd.AddCommand(newRunsListCommand(ctx))
	cmd.AddCommand(newRunsShowCommand(ctx))
	cmd.AddCommand(newRunsClearCommand(ctx))
	return cmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					cmd.Println("no runs recorded")
					return nil
				}

				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					mode := ""
					if run.DryRun {
						mode = "dry-run"
					}
					rows = append(rows, []string{
						shortID(run.ID),
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						strconv.Itoa(run.FilesScanned),
						strconv.Itoa(run.FilesDeleted),
						humanize.Bytes(uint64(run.BytesReclaimed)),
						mode,
					})
				}
				cmd.Println(renderTable(
					[]string{"RUN", "STARTED", "SCANNED", "REMOVED", "RECLAIMED", "MODE"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its deletions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				cmd.Printf("run:       %s\n", run.ID)
				cmd.Printf("started:   %s\n", run.StartedAt.Local().Format(time.RFC3339))
				cmd.Printf("elapsed:   %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
				cmd.Printf("scanned:   %d (%d skipped)\n", run.FilesScanned, run.FilesSkipped)
				cmd.Printf("removed:   %d (%d failures)\n", run.FilesDeleted, run.DeleteFailures)
				cmd.Printf("reclaimed: %s\n", humanize.Bytes(uint64(run.BytesReclaimed)))
				cmd.Printf("dry run:   %t\n", run.DryRun)
				if run.ReportPath != "" {
					cmd.Printf("report:    %s\n", run.ReportPath)
				}

				deletions, err := store.Deletions(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				if len(deletions) == 0 {
					return nil
				}

				rows := make([][]string, 0, len(deletions))
				for _, d := range deletions {
					rows = append(rows, []string{
						d.Path,
						d.KeptPath,
						humanize.Bytes(uint64(d.SizeBytes)),
					})
				}
				cmd.Println(renderTable(
					[]string{"DELETED", "KEPT", "SIZE"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				cmd.Printf("cleared %d runs\n", removed)
				return nil
			})
		},
	}
}
