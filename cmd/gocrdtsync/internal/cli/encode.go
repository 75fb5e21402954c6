package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/cshekharsharma/go-crdt-sync"
	"github.com/cshekharsharma/go-crdt-sync/config"
	"github.com/spf13/cobra"
)

func newEncodeCommand() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Insert one string operation and print the resulting update and state vector as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if v2 {
				cfg = config.Config{Format: config.FormatV2}
			}
			doc := gocrdt.NewDocument(1, &cfg, newLogger())
			doc.InsertString(nil, nil, nil, nil, text)

			update := doc.EncodeStateAsUpdate(nil)
			sv := doc.EncodeStateVector()

			fmt.Fprintf(cmd.OutOrStdout(), "update: %s\n", hex.EncodeToString(update))
			fmt.Fprintf(cmd.OutOrStdout(), "state-vector: %s\n", hex.EncodeToString(sv))
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "hello", "text to insert before encoding")
	return cmd
}
