package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resumatch/internal/ranking"
)

const (
	app = "resumatch"
)

type Config struct {
	Ranking    ranking.Config    `mapstructure:"ranking"`
	Similarity *SimilarityConfig `mapstructure:"similarity"`
	Extraction *ExtractionConfig `mapstructure:"extraction"`
	AI         *AIConfig         `mapstructure:"ai"`
}

type SimilarityConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Tiers   []string `mapstructure:"tiers"`
}

type ExtractionConfig struct {
	// Entities enables model-backed entity recognition for skills.
	Entities bool `mapstructure:"entities"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile        string  `mapstructure:"api-key-file"`
	Model             string  `mapstructure:"model"`
	EmbeddingModel    string  `mapstructure:"embedding-model"`
	MaxRetries        int     `mapstructure:"max-retries"`
	MaxLogLength      int     `mapstructure:"max-log-length"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resumatch extracts a structured profile from a resume and ranks matching jobs",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resumatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	def := ranking.DefaultConfig()
	viper.SetDefault("ranking.limit", def.Limit)
	viper.SetDefault("ranking.skill-weight", def.SkillWeight)
	viper.SetDefault("ranking.semantic-weight", def.SemanticWeight)
	viper.SetDefault("ranking.workers", def.Workers)

	viper.SetDefault("similarity.enabled", true)
	viper.SetDefault("similarity.tiers", []string{"embedding", "tfidf", "lexical"})

	viper.SetDefault("extraction.entities", false)

	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ai.gemini.embedding-model", "text-embedding-004")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
	viper.SetDefault("ai.gemini.requests-per-second", 2)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without a config file the defaults apply, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
