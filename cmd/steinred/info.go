package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/steinred/steinlib"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <instance.stp>",
		Short: "Print the headline figures of an STP instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			ins, err := steinlib.Parse(f)
			if err != nil {
				return err
			}

			kind := "Steiner tree"
			switch {
			case ins.Prizes != nil && ins.Root >= 0:
				kind = "rooted prize-collecting"
			case ins.Prizes != nil:
				kind = "prize-collecting"
			case ins.MaxDegrees != nil:
				kind = "degree-constrained"
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "name\t%s\n", ins.Name)
			fmt.Fprintf(w, "kind\t%s\n", kind)
			fmt.Fprintf(w, "nodes\t%d\n", ins.Nodes)
			fmt.Fprintf(w, "edges\t%d\n", len(ins.Edges))
			fmt.Fprintf(w, "terminals\t%d\n", len(ins.Terminals))
			if ins.Root >= 0 {
				fmt.Fprintf(w, "root\t%d\n", ins.Root+1)
			}
			return w.Flush()
		},
	}
}
