// Package main provides the brdocs command line tool. It formats, validates
// and analyzes CPF, CNPJ and email inputs and generates test documents.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// errInvalid makes the process exit with status 1 without printing usage
var errInvalid = errors.New("invalid document")

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "brdocs",
		Short:         "Brazilian document (CPF, CNPJ) and email toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		detectCommand(),
		formatCommand(),
		validateCommand(),
		analyzeCommand(),
		generateCommand(),
		extractCommand(),
		currencyCommand(),
	)

	return rootCmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// inputText joins args, or reads stdin when there are none
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
