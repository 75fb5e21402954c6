package cli

import (
	"encoding/hex"

	"github.com/cshekharsharma/go-crdt-sync"
	"github.com/cshekharsharma/go-crdt-sync/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hex-update>",
		Short: "Apply a hex-encoded update (as printed by encode) to a fresh document and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := hex.DecodeString(args[0])
			if err != nil {
				return errors.Wrap(err, "decode hex argument")
			}

			cfg := config.Default()
			if v2 {
				cfg = config.Config{Format: config.FormatV2}
			}
			doc := gocrdt.NewDocument(0, &cfg, newLogger())
			if err := doc.ApplyUpdate(data, "cli"); err != nil {
				return errors.Wrap(err, "apply update")
			}

			printDocument(cmd, "decoded", doc)
			return nil
		},
	}
	return cmd
}
