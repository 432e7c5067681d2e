package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/procurelens/ProcureLens/internal/analysis"
	"github.com/procurelens/ProcureLens/internal/intelligence/riskai"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

type analyzeOptions struct {
	file         string
	docType      string
	vendorID     string
	contractName string
	aiURL        string
	aiKey        string
	aiTimeout    time.Duration
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a procurement document",
		Long: "Analyze a plain-text procurement document through the five risk lenses.\n" +
			"The heuristic pipeline runs locally; pass --ai-url to try an external\n" +
			"analysis service first (any failure falls back to the local pipeline).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.file, "file", "", "path to the document text file [REQUIRED]")
	f.StringVar(&opts.docType, "type", "", "document type (SOW, PO, Agreement) [REQUIRED]")
	f.StringVar(&opts.vendorID, "vendor-id", "", "vendor identifier for the vendor lens")
	f.StringVar(&opts.contractName, "contract-name", "", "contract name (default: file name)")
	f.StringVar(&opts.aiURL, "ai-url", "", "base URL of the AI analysis service")
	f.StringVar(&opts.aiKey, "ai-key", "", "API key for the AI analysis service")
	f.DurationVar(&opts.aiTimeout, "ai-timeout", analysis.DefaultAITimeout, "AI call timeout")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	docType := risk.DocumentType(opts.docType)
	if !docType.Valid() {
		return fmt.Errorf("invalid document type %q (expected SOW, PO, or Agreement)", opts.docType)
	}

	content, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return fmt.Errorf("document %s is empty", opts.file)
	}

	logger, err := newCLILogger(root.logLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var ai analysis.AIClient
	if opts.aiURL != "" {
		client, err := riskai.NewClient(opts.aiURL, opts.aiKey, riskai.WithTimeout(opts.aiTimeout))
		if err != nil {
			return fmt.Errorf("init ai client: %w", err)
		}
		ai = client
	}

	name := opts.contractName
	if name == "" {
		name = filepath.Base(opts.file)
	}

	engine := analysis.NewEngine(ai, logger, analysis.WithAITimeout(opts.aiTimeout))
	res := engine.AnalyzeContract(cmd.Context(), analysis.Request{
		Content:      string(content),
		DocumentType: docType,
		ContractName: name,
		VendorID:     opts.vendorID,
	})

	switch strings.ToLower(root.output) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "summary", "":
		fmt.Fprint(cmd.OutOrStdout(), renderSummary(res))
		return nil
	default:
		return fmt.Errorf("invalid output format %q (expected summary or json)", root.output)
	}
}

// renderSummary formats a result for terminal reading.
func renderSummary(res *analysis.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Contract: %s (%s)\n", res.ContractName, res.DocumentType)
	fmt.Fprintf(&sb, "Analyzed: %s via %s\n", res.AnalyzedAt.Format(time.RFC3339), res.AnalysisMethod)
	fmt.Fprintf(&sb, "Overall risk: %s (%d/100)\n\n", res.OverallRisk.Band, res.OverallRisk.Score)

	sb.WriteString("Lens scores:\n")
	lenses := []struct {
		name  string
		level risk.Level
	}{
		{"Legal", res.Legal.RiskLevel},
		{"Financial", res.Financial.RiskLevel},
		{"Operational", res.Operational.RiskLevel},
		{"Vendor", res.Vendor.RiskLevel},
		{"Compliance", res.Compliance.RiskLevel},
	}
	for _, l := range lenses {
		fmt.Fprintf(&sb, "  %-12s %3d  %s\n", l.name, l.level.Score, l.level.Band)
	}

	if len(res.TopRecommendations) > 0 {
		sb.WriteString("\nTop recommendations:\n")
		for i, rec := range res.TopRecommendations {
			fmt.Fprintf(&sb, "  %d. [%s/%s] %s\n", i+1, rec.Lens, rec.Priority, rec.Text)
		}
	}

	if len(res.QuickActions) > 0 {
		sb.WriteString("\nQuick actions:\n")
		for _, qa := range res.QuickActions {
			fmt.Fprintf(&sb, "  - %s\n", qa.Label)
		}
	}

	return sb.String()
}
