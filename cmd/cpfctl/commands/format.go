package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"credito/pkg/cpf"
)

func formatCmd() *cobra.Command {
	var partial bool

	cmd := &cobra.Command{
		Use:   "format <cpf>",
		Short: "Apply the CPF mask without validating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cpf.Format(args[0], partial))
			return nil
		},
	}
	cmd.Flags().BoolVar(&partial, "partial", false, "use the progressive mask applied while typing")
	return cmd
}
