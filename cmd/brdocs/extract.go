package main

import (
	"fmt"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/nexconsult/brdocs-api/internal/logger"
	"github.com/nexconsult/brdocs-api/internal/services"
	"github.com/spf13/cobra"
)

func extractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Lists the valid CPFs and CNPJs found in text or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			if isHTML, _ := cmd.Flags().GetBool("html"); isHTML {
				text, err = services.NewExtractorService(logger.Discard()).TextFromHTML(text)
				if err != nil {
					return err
				}
			}

			for _, m := range brdocs.ExtractDocuments(text) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Type, m.Formatted)
			}
			return nil
		},
	}

	cmd.Flags().Bool("html", false, "Treat the input as HTML")
	return cmd
}
