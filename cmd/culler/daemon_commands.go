package main

import (
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"culler/internal/config"
	"culler/internal/daemon"
	"culler/internal/history"
	"culler/internal/logging"
	"culler/internal/workflow"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the culler daemon",
	}
	cmd.AddCommand(newDaemonRunCommand(ctx))
	cmd.AddCommand(newDaemonStatusCommand(ctx))
	return cmd
}

func newDaemonRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the daemon loop in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				mgr := workflow.NewManager(cfg, store, logger)
				d, err := daemon.New(cfg, store, logger, mgr)
				if err != nil {
					return err
				}
				defer d.Stop()

				if err := d.Start(cmd.Context()); err != nil {
					return err
				}
				<-cmd.Context().Done()
				return nil
			})
		},
	}
}

func newDaemonStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report daemon lock state and the last recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *history.Store) error {
				lockPath := daemon.LockPath(cfg)
				running, err := daemonRunning(lockPath)
				if err != nil {
					return err
				}
				if running {
					cmd.Printf("daemon: running (lock %s)\n", lockPath)
				} else {
					cmd.Println("daemon: not running")
				}

				last, err := store.LastRun(cmd.Context())
				if err != nil {
					return err
				}
				if last == nil {
					cmd.Println("history: no runs recorded")
					return nil
				}
				cmd.Printf("last run: %s at %s (%d scanned, %d removed)\n",
					shortID(last.ID),
					last.StartedAt.Local().Format(time.RFC3339),
					last.FilesScanned, last.FilesDeleted)
				return nil
			})
		},
	}
}

// daemonRunning probes the daemon lock without disturbing a live daemon: a
// successful TryLock means nothing held it, so it is released immediately.
func daemonRunning(lockPath string) (bool, error) {
	probe := flock.New(lockPath)
	acquired, err := probe.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe daemon lock: %w", err)
	}
	if acquired {
		if err := probe.Unlock(); err != nil {
			return false, fmt.Errorf("release probe lock: %w", err)
		}
		return false, nil
	}
	return true, nil
}
