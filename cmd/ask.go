package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docmind-ai/multirag-be/types"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the ingested documents",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		question := strings.Join(args, " ")
		topK, _ := cmd.Flags().GetInt("top-k")

		cfg := loadConfig()
		p, cleanup, err := buildPipeline(cmd.Context(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer cleanup()

		resp, err := p.answer.Answer(cmd.Context(), question, topK)
		if err != nil {
			if errors.Is(err, types.ErrIndexNotInitialized) {
				log.Fatal(err)
			}
			log.Fatalf("Failed to answer question: %v", err)
		}

		fmt.Println(resp.Answer)
		if len(resp.Citations) > 0 {
			fmt.Println("\nSources:")
			for _, citation := range resp.Citations {
				if citation.Reference != "" {
					fmt.Printf("  - page %d, %s\n", citation.Page, citation.Reference)
				} else {
					fmt.Printf("  - page %d\n", citation.Page)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().IntP("top-k", "k", 0, "Number of chunks to retrieve (0 uses the configured default)")
}
