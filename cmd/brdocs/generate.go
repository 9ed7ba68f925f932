package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nexconsult/brdocs-api/internal/brdocs"
	"github.com/spf13/cobra"
)

func generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generates valid CPFs or CNPJs for test fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			rawType, _ := cmd.Flags().GetString("type")
			count, _ := cmd.Flags().GetInt("count")
			seed, _ := cmd.Flags().GetUint64("seed")
			formatted, _ := cmd.Flags().GetBool("formatted")

			docType, err := brdocs.ParseDocType(rawType)
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			var generate func(*rand.Rand) string
			switch docType {
			case brdocs.DocTypeCPF:
				generate = brdocs.GenerateCPF
			case brdocs.DocTypeCNPJ:
				generate = brdocs.GenerateCNPJ
			default:
				return fmt.Errorf("cannot generate %s", docType)
			}

			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			r := rand.New(rand.NewPCG(seed, seed>>32|1))

			for i := 0; i < count; i++ {
				digits := generate(r)
				if formatted {
					digits = brdocs.FormatDocumentByType(docType, digits)
				}
				fmt.Fprintln(cmd.OutOrStdout(), digits)
			}
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", "cpf", "Document type: cpf or cnpj")
	cmd.Flags().IntP("count", "n", 1, "How many documents to generate")
	cmd.Flags().Uint64("seed", 0, "Random seed, time based when 0")
	cmd.Flags().BoolP("formatted", "f", false, "Print masked documents")

	return cmd
}
