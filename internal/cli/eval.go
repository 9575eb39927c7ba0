package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chaff/internal/dataset"
	"github.com/ppiankov/chaff/internal/eval"
	"github.com/ppiankov/chaff/internal/model"
)

var (
	evalDataset    string
	evalDifficulty string
	evalCategory   string
	evalWorkers    int
	evalJSON       bool
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate detector accuracy against a labeled dataset",
	Long: `Eval runs every claim of a labeled dataset through the detector and
compares verdicts against ground truth:
- Accuracy overall and split by difficulty and category
- Mean confidence when correct vs incorrect (a negative gap flags
  miscalibration)
- Search rate and mean latency

A claim that fails evaluation stays in the denominator as incorrect.
Measured accuracy is data, not an operational failure: the exit code is
non-zero only when the dataset cannot be loaded or the gateway cannot be
initialized.

Example:
  chaff eval --dataset data/aviation_claims.json
  chaff eval --dataset data/aviation_claims.json --difficulty hard
  chaff eval --dataset data/aviation_claims.json --category technical --workers 8`,
	Args: cobra.NoArgs,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalDataset, "dataset", "data/aviation_claims.json", "labeled dataset path")
	evalCmd.Flags().StringVar(&evalDifficulty, "difficulty", "", "only claims with this difficulty (easy, medium, hard)")
	evalCmd.Flags().StringVar(&evalCategory, "category", "", "only claims with this category")
	evalCmd.Flags().IntVar(&evalWorkers, "workers", 0, "concurrent workers (default from config)")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the full report as JSON on stdout")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()
	if evalWorkers > 0 {
		cfg.Concurrency.Workers = evalWorkers
	}
	if err := resolveAPIKeys(&cfg); err != nil {
		return err
	}

	claims, err := dataset.Load(evalDataset)
	if err != nil {
		return err
	}
	if evalDifficulty != "" && !model.Difficulty(evalDifficulty).Valid() {
		return fmt.Errorf("unknown difficulty: %s (want easy, medium or hard)", evalDifficulty)
	}
	claims = dataset.Filter(claims, model.Difficulty(evalDifficulty), evalCategory)
	if len(claims) == 0 {
		return fmt.Errorf("no claims in %s match the filter", evalDataset)
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	detector, _, err := buildDetector(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Chaff Labeled Evaluation\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Dataset:   %s\n", evalDataset)
	fmt.Fprintf(os.Stderr, "  Claims:    %d\n", len(claims))
	fmt.Fprintf(os.Stderr, "  Workers:   %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Provider:  %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintf(os.Stderr, "  Search:    %s\n", searchLabel(cfg))
	fmt.Fprintf(os.Stderr, "\n")

	runner := eval.NewRunner(detector, cfg.Concurrency.Workers, logger)
	report := runner.Run(context.Background(), claims)

	for _, r := range report.Results {
		if r.Correct {
			fmt.Fprintf(os.Stderr, "✓ %-8s %s %d  (%s)\n",
				r.Claim.ID, r.Evaluation.Verdict, r.Evaluation.Confidence,
				r.Evaluation.Elapsed.Round(time.Millisecond))
		} else {
			fmt.Fprintf(os.Stderr, "✗ %-8s got %s %d, want %s\n",
				r.Claim.ID, r.Evaluation.Verdict, r.Evaluation.Confidence, r.Claim.Verdict)
		}
	}

	printMetrics(report.Metrics)

	if evalJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		fmt.Println(string(data))
	}

	return nil
}

// printMetrics renders the aggregate metrics block on stderr
func printMetrics(m *model.AggregateMetrics) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Evaluation Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Claims:       %d\n", m.Total)
	fmt.Fprintf(os.Stderr, "  Correct:      %d\n", m.Correct)
	fmt.Fprintf(os.Stderr, "  Failures:     %d\n", m.Failures)
	fmt.Fprintf(os.Stderr, "  Accuracy:     %.1f%%\n", m.Accuracy*100)
	fmt.Fprintf(os.Stderr, "\n")

	if len(m.ByDifficulty) > 0 {
		fmt.Fprintf(os.Stderr, "  By difficulty:\n")
		for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
			if b, ok := m.ByDifficulty[d]; ok {
				fmt.Fprintf(os.Stderr, "    %-12s %5.1f%%  (%d/%d)\n", d, b.Accuracy*100, b.Correct, b.Total)
			}
		}
		fmt.Fprintf(os.Stderr, "\n")
	}

	if len(m.ByCategory) > 0 {
		categories := make([]string, 0, len(m.ByCategory))
		for c := range m.ByCategory {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		fmt.Fprintf(os.Stderr, "  By category:\n")
		for _, c := range categories {
			b := m.ByCategory[c]
			fmt.Fprintf(os.Stderr, "    %-12s %5.1f%%  (%d/%d)\n", c, b.Accuracy*100, b.Correct, b.Total)
		}
		fmt.Fprintf(os.Stderr, "\n")
	}

	gapNote := ""
	if m.ConfidenceGap < 0 {
		gapNote = "  (miscalibrated: more confident when wrong)"
	}
	fmt.Fprintf(os.Stderr, "  Confidence:   %.1f correct / %.1f incorrect, gap %+.1f%s\n",
		m.MeanConfidenceCorrect, m.MeanConfidenceIncorrect, m.ConfidenceGap, gapNote)
	fmt.Fprintf(os.Stderr, "  Search rate:  %.1f%%\n", m.SearchRate*100)
	fmt.Fprintf(os.Stderr, "  Mean latency: %s\n", m.MeanLatency.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n")
}
