package cmds

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/goliatone/go-tourneyform/internal/config"
	"github.com/goliatone/go-tourneyform/internal/logger"
	"github.com/goliatone/go-tourneyform/pkg/schema"
)

var tracer = otel.Tracer("github.com/goliatone/go-tourneyform/cmd/tourneyform/cmds")

var (
	configPath string

	cfg      *config.Config
	registry *schema.Registry
)

var rootCmd = &cobra.Command{
	Use:           "tourneyform",
	Short:         "Fill in and upload tournament records",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return ExitErrorWrap(ExitUsage, fmt.Errorf("load config: %w", err))
		}
		cfg = loaded
		logger.Init(cfg.LogLevel())

		registry, err = loadRegistry(cfg.Schema.File)
		if err != nil {
			return ExitErrorWrap(ExitUsage, fmt.Errorf("load collections: %w", err))
		}
		logger.Logger.DebugContext(cmd.Context(), "collections loaded", "count", registry.Len(), "file", cfg.Schema.File)
		return nil
	},
}

func loadRegistry(path string) (*schema.Registry, error) {
	if path == "" {
		return schema.Default()
	}
	return schema.LoadFile(path)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default tourneyform.yaml in . or $HOME/.config/tourneyform)")
	rootCmd.AddCommand(collectionsCmd, fieldsCmd, submitCmd)
}
