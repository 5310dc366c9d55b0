package commands

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"credito/pkg/cpf"
)

const maxGenerate = 10_000

func generateCmd() *cobra.Command {
	var (
		count int
		raw   bool
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate valid CPFs for test fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 || count > maxGenerate {
				return fmt.Errorf("count must be between 1 and %d", maxGenerate)
			}

			next := cpf.Generate
			if cmd.Flags().Changed("seed") {
				r := rand.New(rand.NewPCG(seed, seed))
				next = func() cpf.CPF { return cpf.GenerateFrom(r) }
			}

			out := cmd.OutOrStdout()
			for range count {
				c := next()
				if raw {
					fmt.Fprintln(out, c.String())
					continue
				}
				fmt.Fprintln(out, c.Formatted())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of CPFs to generate")
	cmd.Flags().BoolVar(&raw, "raw", false, "print digits only, without the mask")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for reproducible output")
	return cmd
}
