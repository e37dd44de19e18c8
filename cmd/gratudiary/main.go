// Command gratudiary is a terminal front end for the gratitude journal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/limbo/gratudiary/internal/service"
	"github.com/limbo/gratudiary/internal/storage"
	"github.com/limbo/gratudiary/pkg/config"
	"github.com/spf13/cobra"
)

func main() {
	service.InitValidator()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	if err := execute(context.Background(), config.New(), os.Args[1:], os.Stdout, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, cfg *config.Config, args []string, out io.Writer, in io.Reader) error {
	a := newApp(cfg)
	defer a.close()
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)
	root.SetIn(in)
	return root.ExecuteContext(ctx)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "gratudiary",
		Short:         "Gratitude journal in your terminal",
		Long:          "Write down what went well, what made you happy and what you are grateful for, one entry a day.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&a.driver, "driver", a.cfg.GetStringOr("STORAGE_DRIVER", storage.DriverSqlite), "storage driver (sqlite|postgres|redis|mongo|memory)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", defaultDBPath(a.cfg), "sqlite database file")
	root.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "keep everything in memory for this run only")

	root.AddCommand(
		newRegisterCommand(a),
		newLoginCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newAddCommand(a),
		newListCommand(a),
		newEditCommand(a),
		newStatsCommand(a),
		newInsightsCommand(a),
		newExportCommand(a),
		newImportCommand(a),
	)
	return root
}
