package main

import (
	"encoding/json"
	"fmt"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/spf13/cobra"
)

// docTypeFlag resolves --type, falling back to detection when it is empty
func docTypeFlag(cmd *cobra.Command, value string) (brdocs.DocType, error) {
	raw, _ := cmd.Flags().GetString("type")
	if raw == "" {
		return brdocs.DetectDocType(value), nil
	}
	return brdocs.ParseDocType(raw)
}

func detectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [text]",
		Short: "Prints the document type of partially typed text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), brdocs.DetectDocType(text))
			return nil
		},
	}
}

func formatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [document]",
		Short: "Applies the CPF or CNPJ mask",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			docType, err := docTypeFlag(cmd, text)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), brdocs.FormatDocumentByType(docType, text))
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "", "Document type: cpf, cnpj or email (detected when empty)")
	return cmd
}

func validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [document]",
		Short: "Checks a document, exiting with status 1 when it is invalid",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			docType, err := docTypeFlag(cmd, text)
			if err != nil {
				return err
			}

			if !brdocs.IsValidDocument(docType, text) {
				fmt.Fprintf(cmd.OutOrStdout(), "invalid %s\n", docType)
				return errInvalid
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s\n", docType)
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "", "Document type: cpf, cnpj or email (detected when empty)")
	return cmd
}

func analyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [document]",
		Short: "Prints the full analysis of a document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := inputText(cmd, args)
			if err != nil {
				return err
			}
			docType, err := docTypeFlag(cmd, text)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(brdocs.AnalyzeAs(docType, text))
		},
	}

	cmd.Flags().StringP("type", "t", "", "Document type: cpf, cnpj or email (detected when empty)")
	return cmd
}
