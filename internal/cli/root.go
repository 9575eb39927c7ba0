package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/cache"
	"github.com/ppiankov/chaff/internal/classify"
	"github.com/ppiankov/chaff/internal/detect"
	"github.com/ppiankov/chaff/internal/evidence"
	"github.com/ppiankov/chaff/internal/llm"
	"github.com/ppiankov/chaff/internal/model"
	"github.com/ppiankov/chaff/internal/search"
)

var (
	cfgFile        string
	verbose        bool
	providerFlag   string
	modelFlag      string
	searchFlag     string
	timeoutFlag    int
	thresholdFlag  int
	maxRetriesFlag int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chaff",
	Short: "Chaff - LLM-driven BS detector for aviation claims",
	Long: `Chaff judges aviation claims as LEGITIMATE or BS with a calibrated
confidence score and transparent reasoning.

A claim is first judged by an LLM classifier. When the stated confidence
falls below the calibrated band for its category, chaff gathers web
evidence and lets it confirm, soften, or flip the verdict. Batch modes
evaluate a labeled dataset (accuracy, calibration, latency) or audit
unlabeled claims with trust scoring and human-review routing.

Chaff separates wheat from chaff; it does not decide what is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Chaff.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chaff v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.chaff/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "LLM provider (openai, anthropic, ollama)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "LLM model name")
	rootCmd.PersistentFlags().StringVar(&searchFlag, "search", "", "search provider (duckduckgo, mock, none)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "LLM call timeout in seconds")
	rootCmd.PersistentFlags().IntVar(&thresholdFlag, "threshold", 0, "confidence threshold below which evidence is gathered")
	rootCmd.PersistentFlags().IntVar(&maxRetriesFlag, "max-retries", -1, "max retries for transient gateway failures")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.chaff")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CHAFF_*
	viper.SetEnvPrefix("CHAFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig layers defaults, config file, environment and explicit flags
func buildConfig() model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("domain"); v != "" {
		cfg.Domain = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if v := viper.GetInt("llm.max_tokens"); v > 0 {
		cfg.LLM.MaxTokens = v
	}
	if viper.IsSet("llm.temperature") {
		cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	}
	if viper.IsSet("detector.confidence_threshold") {
		cfg.Detector.ConfidenceThreshold = viper.GetInt("detector.confidence_threshold")
	}
	if viper.IsSet("detector.max_retries") {
		cfg.Detector.MaxRetries = viper.GetInt("detector.max_retries")
	}
	if viper.IsSet("search.provider") {
		cfg.Search.Provider = viper.GetString("search.provider")
	}
	if v := viper.GetString("search.user_agent"); v != "" {
		cfg.Search.UserAgent = v
	}
	if v := viper.GetInt("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if viper.IsSet("review.trust_threshold") {
		cfg.Review.TrustThreshold = viper.GetFloat64("review.trust_threshold")
	}
	if viper.IsSet("review.calibration_floor") {
		cfg.Review.CalibrationFloor = viper.GetFloat64("review.calibration_floor")
	}

	// Explicit flags win over file and environment
	if providerFlag != "" {
		cfg.LLM.Provider = providerFlag
	}
	if modelFlag != "" {
		cfg.LLM.Model = modelFlag
	}
	if searchFlag != "" {
		if searchFlag == "none" {
			cfg.Search.Provider = ""
		} else {
			cfg.Search.Provider = searchFlag
		}
	}
	if timeoutFlag > 0 {
		cfg.LLM.Timeout = timeoutFlag
	}
	if thresholdFlag > 0 {
		cfg.Detector.ConfidenceThreshold = thresholdFlag
	}
	if maxRetriesFlag >= 0 {
		cfg.Detector.MaxRetries = maxRetriesFlag
	}
	cfg.Output.Verbose = verbose

	return cfg
}

// resolveAPIKeys pulls provider credentials from the environment.
// Keys never live in the config file.
func resolveAPIKeys(cfg *model.Config) error {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

// newLogger builds the structured logger. Quiet by default: only warnings
// (retries, degraded queries) reach stderr unless --verbose is set.
func newLogger() *zap.Logger {
	var zcfg zap.Config
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zcfg.DisableStacktrace = true

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// buildProviders initializes the LLM gateway and the optional search
// provider from config. The gateway is mandatory; search is not.
func buildProviders(cfg model.Config, logger *zap.Logger) (llm.Provider, search.Provider, error) {
	gateway, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize llm gateway: %w", err)
	}
	if gateway == nil {
		return nil, nil, fmt.Errorf("no LLM provider configured (use --provider or set llm.provider)")
	}

	searcher, err := search.NewProvider(search.ConfigFromModel(cfg.Search, cfg.RateLimiting), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize search provider: %w", err)
	}
	if searcher != nil && cfg.Cache.Enabled {
		c := cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		searcher = search.NewCachedProvider(searcher, c, cfg.Cache.TTL, logger)
	}

	return gateway, searcher, nil
}

// buildDetector wires classifier, evidence pipeline and the state machine.
// The gateway is returned alongside so callers can reuse it (the audit
// judge shares the detector's provider).
func buildDetector(cfg model.Config, logger *zap.Logger) (*detect.Detector, llm.Provider, error) {
	gateway, searcher, err := buildProviders(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	classifier := classify.NewClassifier(gateway, logger)

	var gatherer detect.EvidenceGatherer
	if searcher != nil {
		gatherer = evidence.NewPipeline(searcher, gateway, logger)
	}

	return detect.NewDetector(classifier, gatherer, cfg.Detector, logger), gateway, nil
}
