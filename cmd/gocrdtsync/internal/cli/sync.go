package cli

import (
	"fmt"

	"github.com/cshekharsharma/go-crdt-sync"
	"github.com/cshekharsharma/go-crdt-sync/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run two in-process replicas through a concurrent edit and converge them",
		Long: "sync creates two Documents in this process, applies a few concurrent\n" +
			"operations to each, and exchanges updates between them over a Go\n" +
			"channel. This is a demonstration of the integration pipeline, not a\n" +
			"transport: no bytes ever leave the process.",
		RunE: runSync,
	}
}

// replicaMailbox is the channel two in-process replicas exchange raw
// update bytes over, standing in for whatever real transport a caller
// would wire in (out of scope, §6 Non-goals).
type replicaMailbox chan []byte

func runSync(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if v2 {
		cfg = config.Config{Format: config.FormatV2}
	}
	logger := newLogger()
	defer logger.Sync()

	a := gocrdt.NewDocument(1, &cfg, logger)
	b := gocrdt.NewDocument(2, &cfg, logger)

	firstA := a.InsertString(nil, nil, nil, nil, "hello")
	_ = a.InsertString(nil, nil, &firstA, nil, " from A")
	b.InsertString(nil, nil, nil, nil, "hi from B")
	a.IncrementCounter("edits", 1)
	b.IncrementCounter("edits", 1)
	a.ChangePNCounter("score", 5)
	b.ChangePNCounter("score", -2)

	toB := make(replicaMailbox, 1)
	toA := make(replicaMailbox, 1)

	toB <- a.EncodeStateAsUpdate(nil)
	toA <- b.EncodeStateAsUpdate(nil)

	if err := b.ApplyUpdate(<-toB, a.ID); err != nil {
		return errors.Wrap(err, "b applying a's update")
	}
	if err := a.ApplyUpdate(<-toA, b.ID); err != nil {
		return errors.Wrap(err, "a applying b's update")
	}

	// A second round exchanges whatever each replica only just learned
	// about the other, converging both to the same state vector.
	toB <- a.EncodeStateAsUpdate(mustDecodeSV(a, b.EncodeStateVector()))
	toA <- b.EncodeStateAsUpdate(mustDecodeSV(b, a.EncodeStateVector()))
	if err := b.ApplyUpdate(<-toB, a.ID); err != nil {
		return errors.Wrap(err, "b applying a's second update")
	}
	if err := a.ApplyUpdate(<-toA, b.ID); err != nil {
		return errors.Wrap(err, "a applying b's second update")
	}

	printDocument(cmd, "A", a)
	printDocument(cmd, "B", b)
	return nil
}

func mustDecodeSV(src *gocrdt.Document, data []byte) gocrdt.StateVector {
	sv, err := src.DecodeStateVector(data)
	if err != nil {
		return nil
	}
	return sv
}

func printDocument(cmd *cobra.Command, label string, d *gocrdt.Document) {
	fmt.Fprintf(cmd.OutOrStdout(), "--- replica %s (client %d) ---\n", label, d.Self)
	for _, item := range d.Store().Sequence(nil) {
		if item.Deleted() {
			continue
		}
		if sc, ok := item.Content().(*gocrdt.ContentString); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "  %v: %q\n", item.ID(), sc.Value)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  edits counter: %d\n", d.Store().CounterValue("edits"))
	fmt.Fprintf(cmd.OutOrStdout(), "  score pncounter: %d\n", d.Store().PNCounterValue("score"))
}
