package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/task-ticker/internal/config"
	"github.com/BuzzLyutic/task-ticker/internal/view"
)

// Каждая команда - отдельный запуск: гидратация, одна операция, вывод списка.
func runOnce(cmd *cobra.Command, cfg config.Config, op func(a *app) error) error {
	a, err := openApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Hydrate(cmd.Context()); err != nil {
		return err
	}
	if op != nil {
		if err := op(a); err != nil {
			return err
		}
	}

	phase, tasks := a.store.Snapshot()
	return view.RenderText(cmd.OutOrStdout(), phase, tasks)
}

func newListCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, *cfg, nil)
		},
	}
}

func newAddCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, *cfg, func(a *app) error {
				_, _, err := a.store.Add(cmd.Context(), strings.Join(args, " "))
				return err
			})
		},
	}
}

func newToggleCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Flip a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, *cfg, func(a *app) error {
				_, err := a.store.Toggle(cmd.Context(), args[0])
				return err
			})
		},
	}
}

func newRmCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task permanently",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, *cfg, func(a *app) error {
				_, err := a.store.Delete(cmd.Context(), args[0])
				return err
			})
		},
	}
}
