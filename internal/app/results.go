package app

import (
	"github.com/spf13/cobra"

	"mplace/internal/cli"
	"mplace/internal/logging"
	"mplace/internal/store"
)

func newResultsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "results",
		Aliases: []string{"ls"},
		Short:   "List stored placements",
		Example: `  mplace results --db mplace.db --chain organism-0 --sort -o jsonl`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := cli.LoadResults(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(e.stderr, o.LogLevel, o.Quiet)
			if err != nil {
				return cli.Usagef("%v", err)
			}

			st, err := store.NewStore(o.Store, o.DB)
			if err != nil {
				return err
			}
			defer func() { _ = store.CloseIfSupported(st) }()
			if o.Store == store.KindMemory {
				logger.Warn("memory store is empty in a new process")
			}
			ctx := cmd.Context()
			if err := st.Init(ctx); err != nil {
				return err
			}
			list, err := st.List(ctx, store.Filter{Chain: o.Chain, SequenceID: o.SequenceID, Limit: o.Limit})
			if err != nil {
				return err
			}
			logger.WithField("count", len(list)).Debug("placements listed")
			return writeAll(e, o.Output, list)
		},
	}
	cli.RegisterResults(cmd.Flags())
	return cmd
}
