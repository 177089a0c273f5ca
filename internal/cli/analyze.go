package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"readright/internal/analyze"
	"readright/internal/ingest"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a document and print its top-risk sentences",
	Long: `Extract the text layer from a .pdf, .docx or .txt document, compute
readability metrics, and print the highest-risk sentences.

Examples:
  readright analyze lease.pdf
  readright analyze consent-form.docx --limit 10
  readright analyze notes.txt --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "emit the full analysis result as JSON")
	analyzeCmd.Flags().IntP("limit", "n", 0, "override the top-risk list size")
	analyzeCmd.Flags().Int("min-chars", 500, "minimum extracted characters before a document is treated as scanned")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	limit, _ := cmd.Flags().GetInt("limit")
	minChars, _ := cmd.Flags().GetInt("min-chars")

	doc, err := ingest.ParseFile(args[0])
	if err != nil {
		return err
	}
	if err := ingest.CheckTextLayer(doc.Text, minChars); err != nil {
		return err
	}

	cfg := analyze.DefaultConfig()
	if limit > 0 {
		cfg.TopLimit = limit
	}
	result := analyze.Document(doc.Text, cfg)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Readability Grade Level: %.2f\n", result.GradeLevel)
	fmt.Printf("Estimated Reading Time (minutes): %.2f\n", result.ReadingTimeMinutes)
	fmt.Printf("Sentences Analyzed: %d (average risk %.2f)\n", result.TotalSentences, result.AverageRiskScore)

	if len(result.TopRiskSentences) == 0 {
		fmt.Println("\nNo high-risk sentences found.")
		return nil
	}

	fmt.Printf("\nTop %d High-Risk Sentences:\n\n", len(result.TopRiskSentences))
	for _, s := range result.TopRiskSentences {
		fmt.Printf("Risk Score: %d\n", s.Score)
		fmt.Println(s.Sentence)
		fmt.Println("-----")
	}
	return nil
}
