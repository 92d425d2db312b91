package app

import (
	"bufio"

	"github.com/spf13/cobra"

	"mplace/core/chain"
	"mplace/internal/cli"
)

func newConvertCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite a chain file as YAML or as a JSON organism list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := cli.LoadConvert(cmd.Flags())
			if err != nil {
				return err
			}
			chains, err := chain.LoadFile(o.ChainFile)
			if err != nil {
				return cli.Usagef("%v", err)
			}
			outw := bufio.NewWriter(e.stdout)
			if o.To == "json" {
				err = chain.WriteJSON(outw, chains)
			} else {
				err = chain.WriteYAML(outw, chains)
			}
			if err != nil {
				return err
			}
			return outw.Flush()
		},
	}
	cli.RegisterConvert(cmd.Flags())
	return cmd
}
