package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"readright/internal/rewrite"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <sentence>",
	Short: "Rewrite a sentence into plain language",
	Long: `Send one sentence to the configured text-generation service and print
the plain-language rewrite. Requires GEMINI_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRewrite,
}

func runRewrite(cmd *cobra.Command, args []string) error {
	sentence := strings.Join(args, " ")

	outcome := rewrite.NewFromEnv().Rewrite(cmd.Context(), sentence)
	if !outcome.OK {
		return fmt.Errorf("rewrite failed: %s", outcome.Reason)
	}
	fmt.Println(outcome.Text)
	return nil
}
