package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"credito/pkg/cpf"
)

type validateOutput struct {
	Input     string   `json:"input"`
	Digits    string   `json:"digits"`
	Formatted string   `json:"formatted"`
	Valid     bool     `json:"valid"`
	Reasons   []string `json:"reasons,omitempty"`
}

func validateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "validate [cpf...]",
		Short: "Validate CPFs given as arguments or one per line on stdin",
		Long: `Validate CPFs given as arguments, or read one per line from stdin when
no arguments are given. Exits with status 1 when any input is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				inputs = lines
			}

			outputs := make([]validateOutput, 0, len(inputs))
			allValid := true
			for _, in := range inputs {
				res := cpf.Validate(in)
				allValid = allValid && res.Valid
				outputs = append(outputs, validateOutput{
					Input:     in,
					Digits:    res.Digits,
					Formatted: res.Formatted,
					Valid:     res.Valid,
					Reasons:   res.Messages(),
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(outputs); err != nil {
					return err
				}
			} else {
				for _, o := range outputs {
					if o.Valid {
						fmt.Fprintf(out, "%s\tvalid\n", o.Formatted)
						continue
					}
					fmt.Fprintf(out, "%s\tinvalid: %s\n", o.Input, strings.Join(o.Reasons, "; "))
				}
			}

			if !allValid {
				return ErrInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
