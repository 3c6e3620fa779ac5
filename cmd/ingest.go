package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docmind-ai/multirag-be/types"
	"github.com/docmind-ai/multirag-be/utils"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a PDF document from disk",
	Long: `Extracts text, tables and image OCR from a local PDF, chunks and
embeds the content and stores it in the vector index.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")
		reinit, _ := cmd.Flags().GetBool("reinit")

		if filePath == "" {
			log.Fatal("--file is required")
		}
		if strings.ToLower(filepath.Ext(filePath)) != ".pdf" {
			log.Fatalf("unsupported file type: %s", filepath.Ext(filePath))
		}

		cfg := loadConfig()
		p, cleanup, err := buildPipeline(cmd.Context(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize services: %v", err)
		}
		defer cleanup()

		if reinit {
			if err := p.store.ReInit(); err != nil {
				log.Fatalf("Failed to reinitialize vector index: %v", err)
			}
		}

		destPath, err := utils.CopyFileWithTimestamp(filePath, cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to copy file: %v", err)
		}

		if title == "" {
			base := filepath.Base(filePath)
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		statusChan := make(chan types.ProcessingDocumentStatus)
		go func() {
			for status := range statusChan {
				fmt.Printf("[%s] %s\n", status.Status, status.Message)
			}
		}()

		resp, err := p.ingest.IngestPath(cmd.Context(), destPath, title, filepath.Base(destPath), statusChan)
		close(statusChan)
		if err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}
		fmt.Printf("Ingested %d pages into %d chunks\n", resp.Pages, resp.Chunks)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("file", "f", "", "Path to the PDF to ingest")
	ingestCmd.Flags().StringP("title", "t", "", "Document title (defaults to the filename)")
	ingestCmd.Flags().BoolP("reinit", "r", false, "Reinitialize the vector index first")
}
