package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chaff/internal/eval"
	"github.com/ppiankov/chaff/internal/model"
	"github.com/ppiankov/chaff/internal/worker"
)

var (
	auditWorkers int
	auditJSON    bool
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <file>",
	Short: "Evaluate unlabeled claims with trust scoring",
	Long: `Audit processes a claims file (one claim per line, # comments allowed)
without ground truth:
- Each claim runs through the detector concurrently
- Each verdict is graded by an LLM judge, a hedging-language calibration
  heuristic, a consistency check against similar prior claims, and a
  domain-drift detector
- The combined trust score routes low-trust verdicts to human review

Example:
  chaff audit claims.txt
  chaff audit claims.txt --workers 8 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().IntVar(&auditWorkers, "workers", 0, "concurrent workers (default from config)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "print per-claim metrics as JSON on stdout")
}

func runAudit(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg := buildConfig()
	if auditWorkers > 0 {
		cfg.Concurrency.Workers = auditWorkers
	}
	if err := resolveAPIKeys(&cfg); err != nil {
		return err
	}

	claims, err := worker.ReadClaimsFromFile(file)
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		return fmt.Errorf("no claims in %s", file)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	detector, gateway, err := buildDetector(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Chaff Production Audit\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "  Claims:      %d\n", len(claims))
	fmt.Fprintf(os.Stderr, "  Workers:     %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Domain:      %s\n", cfg.Domain)
	fmt.Fprintf(os.Stderr, "\n")

	processor := worker.NewBatchProcessor(detector, cfg.Concurrency.Workers)
	results := processor.ProcessClaims(context.Background(), claims)

	evaluator := eval.NewProductionEvaluator(gateway, nil, cfg.Domain, cfg.Review, logger)

	var (
		metrics     []*model.ProductionMetrics
		reviewCount int
		failures    int
		trustSum    float64
	)

	for _, result := range results {
		if result.Error != nil || result.Evaluation == nil {
			failures++
			fmt.Fprintf(os.Stderr, "⚠ %.60s: %v\n", result.Claim, result.Error)
			continue
		}

		m := evaluator.Evaluate(context.Background(), result.Evaluation)
		metrics = append(metrics, m)
		trustSum += m.Trust

		flag := " "
		if m.RequiresReview {
			reviewCount++
			flag = "⚑"
		}
		fmt.Fprintf(os.Stderr, "%s %s %s %d  trust %.2f  %.60s\n",
			flag, verdictMark(m.Verdict), m.Verdict, m.Confidence, m.Trust, m.Claim)
		if m.RequiresReview && verbose {
			for _, reason := range m.ReviewReasons {
				fmt.Fprintf(os.Stderr, "    review: %s\n", reason)
			}
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Audit Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Claims:       %d\n", len(results))
	fmt.Fprintf(os.Stderr, "  Failures:     %d\n", failures)
	if len(metrics) > 0 {
		fmt.Fprintf(os.Stderr, "  Mean trust:   %.2f\n", trustSum/float64(len(metrics)))
		fmt.Fprintf(os.Stderr, "  For review:   %d (%.1f%%)\n", reviewCount, float64(reviewCount)/float64(len(metrics))*100)
	}
	fmt.Fprintf(os.Stderr, "\n")

	if auditJSON {
		data, err := json.MarshalIndent(metrics, "", "  ")
		if err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
		fmt.Println(string(data))
	}

	return nil
}
