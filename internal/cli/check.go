package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/chaff/internal/model"
)

var checkJSON bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Judge a single claim as LEGITIMATE or BS",
	Long: `Check runs one claim through the full detection chain:
- Classify the claim with the configured LLM
- Calibrate confidence against the claim's category band
- Gather web evidence when confidence falls below the threshold
- Let the evidence confirm, soften, or flip the verdict

Example:
  chaff check "The Boeing 747 has four engines"
  chaff check --provider ollama "Concorde is still in scheduled service"
  chaff check --json "A modern airliner can glide 150 km without engines"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print the evaluation as JSON on stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := args[0]

	cfg := buildConfig()
	if err := resolveAPIKeys(&cfg); err != nil {
		return err
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	detector, _, err := buildDetector(cfg, logger)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Provider:  %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Search:    %s\n", searchLabel(cfg))
		fmt.Fprintf(os.Stderr, "Threshold: %d\n", cfg.Detector.ConfidenceThreshold)
		fmt.Fprintln(os.Stderr)
	}

	eval, err := detector.Check(context.Background(), claim)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if checkJSON {
		data, err := json.MarshalIndent(eval, "", "  ")
		if err != nil {
			return fmt.Errorf("encode evaluation: %w", err)
		}
		fmt.Println(string(data))
	} else {
		printEvaluation(eval)
	}

	if eval.Verdict == model.VerdictError {
		return fmt.Errorf("evaluation failed after %d retries: %s", eval.Retries, eval.Err)
	}
	return nil
}

func searchLabel(cfg model.Config) string {
	if cfg.Search.Provider == "" {
		return "disabled"
	}
	return cfg.Search.Provider
}

// verdictMark returns the glyph prefix for a verdict
func verdictMark(v model.Verdict) string {
	switch v {
	case model.VerdictLegitimate:
		return "✓"
	case model.VerdictBS:
		return "✗"
	default:
		return "⚠"
	}
}

// printEvaluation renders one evaluation for humans
func printEvaluation(eval *model.Evaluation) {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s %s  (confidence %d/100)\n", verdictMark(eval.Verdict), eval.Verdict, eval.Confidence)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Claim:    %s\n", eval.Claim)
	if eval.Band != "" {
		fmt.Printf("  Band:     %s\n", eval.Band)
	}
	if eval.UsedSearch {
		fmt.Printf("  Search:   used (%s)\n", eval.Support)
	} else {
		fmt.Printf("  Search:   not used\n")
	}
	if eval.Retries > 0 {
		fmt.Printf("  Retries:  %d\n", eval.Retries)
	}
	fmt.Printf("  Elapsed:  %s\n", eval.Elapsed.Round(time.Millisecond))

	if eval.Reasoning != "" {
		fmt.Println()
		fmt.Println("  Reasoning:")
		fmt.Printf("    %s\n", eval.Reasoning)
	}

	if len(eval.Sources) > 0 {
		fmt.Println()
		fmt.Println("  Sources:")
		for _, s := range eval.Sources {
			fmt.Printf("    - %s\n", s)
		}
	}

	if eval.Err != "" {
		fmt.Println()
		fmt.Printf("  Error:    %s\n", eval.Err)
	}
	fmt.Println()
}
