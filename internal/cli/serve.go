package cli

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"readright/internal/analyze"
	"readright/internal/rewrite"
	"readright/internal/server"
	"readright/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the analysis pipeline.

Endpoints:
  GET  /         — Status
  GET  /health   — Health check
  POST /analyze  — Analyze an uploaded document or raw text
  POST /rewrite  — Rewrite a sentence into plain language`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("addr", "a", "0.0.0.0", "address to listen on")
	serveCmd.Flags().IntP("port", "p", defaultPort(), "port to listen on")
	serveCmd.Flags().Int("min-chars", 500, "minimum extracted characters before an upload is treated as scanned")
}

func defaultPort() int {
	raw := strings.TrimSpace(os.Getenv("PORT"))
	if raw == "" {
		return 8000
	}
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 8000
	}
	return p
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	port, _ := cmd.Flags().GetInt("port")
	minChars, _ := cmd.Flags().GetInt("min-chars")

	var cache *store.Cache
	if path := strings.TrimSpace(os.Getenv("READRIGHT_CACHE_PATH")); path != "" {
		var err error
		cache, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("open rewrite cache: %w", err)
		}
		defer cache.Close()
		log.Printf("rewrite cache enabled at %s", path)
	}

	rewriteCfg := rewrite.DefaultConfig()
	if rewriteCfg.APIKey == "" {
		log.Printf("GEMINI_API_KEY not set; /rewrite will report missing configuration")
	}

	srv := server.New(server.Config{
		Addr:             fmt.Sprintf("%s:%d", addr, port),
		MinDocumentChars: minChars,
		RewriteModel:     rewriteCfg.Model,
		Analyze:          analyze.DefaultConfig(),
	}, rewrite.NewFromEnv(), cache)

	return srv.ListenAndServe()
}
