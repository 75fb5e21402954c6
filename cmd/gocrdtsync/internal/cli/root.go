package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	v2      bool
)

// NewRootCommand builds the gocrdtsync command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gocrdtsync",
		Short:         "Exercise the gocrdt update codec and integration pipeline",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&v2, "v2", false, "use the V2 columnar wire format instead of V1")

	root.AddCommand(newEncodeCommand())
	root.AddCommand(newDecodeCommand())
	root.AddCommand(newSyncCommand())
	root.AddCommand(newInspectCommand())
	return root
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
