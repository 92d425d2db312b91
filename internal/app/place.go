package app

import (
	"bufio"
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"mplace/core/chain"
	"mplace/core/fasta"
	"mplace/core/placement"
	"mplace/internal/cli"
	"mplace/internal/logging"
	"mplace/internal/output"
	"mplace/internal/pretty"
	"mplace/internal/runutil"
	"mplace/internal/store"
	"mplace/internal/writers"
	"mplace/pkg/api"
)

func newPlaceCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place one recognizer chain on one sequence",
		Long: `
Load a recognizer chain (JSON organism list or YAML chain file) and report the
optimal placement on one DNA sequence: the total score, each recognizer's
position and score, and each connector's gap length and score.`,
		Example: `  mplace place --chain organisms.json --sequences ref.fa.gz --sequence-id chr1
  mplace place -c chain.yaml --sequence ACGTTGCA --precompute -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := cli.LoadPlace(cmd.Flags())
			if err != nil {
				return err
			}
			return runPlace(cmd.Context(), e, o)
		},
	}
	cli.RegisterPlace(cmd.Flags())
	return cmd
}

func runPlace(ctx context.Context, e *env, o cli.PlaceOptions) error {
	logger, err := logging.New(e.stderr, o.LogLevel, o.Quiet)
	if err != nil {
		return cli.Usagef("%v", err)
	}

	c, err := chain.Load(o.ChainFile, o.ChainIndex)
	if err != nil {
		return cli.Usagef("%v", err)
	}
	logger.WithFields(log.Fields{
		"chain":       c.Name,
		"recognizers": len(c.Recognizers),
		"widths":      output.IntsCSV(c.Widths()),
	}).Debug("chain loaded")

	rec, err := readSequence(ctx, o)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{"sequence": rec.ID, "length": len(rec.Seq)}).Debug("sequence loaded")

	popt := chain.ProblemOptions{Kind: placement.Statistical}
	if o.Precompute {
		popt.Kind = placement.Precomputed
		maxGap, warns := runutil.ResolveMaxGap(o.MaxGap, placement.NumAlignments(len(rec.Seq), c.Widths()))
		for _, w := range warns {
			logger.Warn(w)
		}
		popt.MaxGap = maxGap
	}
	prob, err := c.Problem(rec.Seq, popt)
	if err != nil {
		return err
	}

	threads := runutil.EffectiveThreads(o.Threads)
	res, err := placement.Place(prob, placement.Options{Workers: threads})
	if err != nil {
		return errors.Wrapf(err, "place %s on %s", c.Name, rec.ID)
	}
	logger.WithFields(log.Fields{
		"variant": res.Kind,
		"score":   res.Score,
		"start":   res.Start,
		"threads": threads,
	}).Debug("placement done")

	v := output.ToAPIPlacement(output.Result{
		SourceFile: o.SeqFile,
		SequenceID: rec.ID,
		Sequence:   rec.Seq,
		Chain:      c,
		Placement:  res,
	})
	saveResult(ctx, logger, o.StoreFlags, &v)

	return writeAll(e, o.Output, []api.PlacementV1{v})
}

func readSequence(ctx context.Context, o cli.PlaceOptions) (fasta.Record, error) {
	if o.Sequence != "" {
		return fasta.Record{ID: "inline", Seq: []byte(strings.TrimSpace(o.Sequence))}, nil
	}
	return fasta.ReadRecord(ctx, o.SeqFile, o.SeqID)
}

// saveResult persists v when a store is configured. Store failures only
// warn; the placement is still written.
func saveResult(ctx context.Context, logger *log.Logger, sf cli.StoreFlags, v *api.PlacementV1) {
	st, err := store.NewStore(sf.Store, sf.DB)
	if err != nil || st == nil {
		if err != nil {
			logger.WithError(err).Warn("result store unavailable")
		}
		return
	}
	defer func() { _ = store.CloseIfSupported(st) }()

	if err := st.Init(ctx); err != nil {
		logger.WithError(err).Warn("result store unavailable")
		return
	}
	if err := st.Save(ctx, v); err != nil {
		logger.WithError(err).Warn("result not saved")
		return
	}
	logger.WithFields(log.Fields{"id": v.ID, "store": sf.Store}).Debug("result saved")
}

// writeAll streams list through the writer for the chosen format.
func writeAll(e *env, o cli.Output, list []api.PlacementV1) error {
	outw := bufio.NewWriter(e.stdout)
	wopt := writers.Options{
		Header:    !o.NoHeader,
		Pretty:    o.Pretty,
		Sort:      o.Sort,
		PrettyOpt: pretty.DefaultOptions,
	}
	in, done := writers.StartPlacementWriter(outw, o.Output, wopt, len(list))
	for _, p := range list {
		in <- p
	}
	close(in)
	if err := <-done; err != nil {
		return err
	}
	return outw.Flush()
}
