// Package commands implements cpfctl, a command-line front end to the CPF
// validator for operators and test-data scripts.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// ErrInvalid is returned by validate when at least one input is rejected.
var ErrInvalid = errors.New("one or more CPFs are invalid")

// Execute runs the root command against the process arguments.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, ErrInvalid) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cpfctl",
		Short:         "Validate, format and generate Brazilian CPF numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(validateCmd(), formatCmd(), generateCmd())
	return root
}
