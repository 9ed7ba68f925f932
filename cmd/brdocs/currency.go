package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/spf13/cobra"
)

func currencyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Formats and parses BRL amounts",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "format <amount>",
			Short: "Formats a decimal amount as BRL",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.ParseFloat(args[0], 64)
				if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
					return fmt.Errorf("invalid amount %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), brdocs.FormatBRL(amount))
				return nil
			},
		},
		&cobra.Command{
			Use:   "parse <text>",
			Short: "Parses typed BRL text, printing 0 when unparsable",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount := brdocs.ParseBRL(strings.Join(args, " "))
				fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(amount, 'f', 2, 64))
				return nil
			},
		},
	)

	return cmd
}
