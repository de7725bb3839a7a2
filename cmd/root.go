package cmd

import (
	"log"
	"time"

	"github.com/masar-app/recommender/internal/sources"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "masar-recommender"
)

type Config struct {
	ProfileFile string          `mapstructure:"profile-file"`
	OutputFile  string          `mapstructure:"output-file"`
	MaxTerms    int             `mapstructure:"max-terms"`
	Sources     *SourcesConfig  `mapstructure:"sources"`
	Courses     *PipelineConfig `mapstructure:"courses"`
	Jobs        *PipelineConfig `mapstructure:"jobs"`
	AI          *AIConfig       `mapstructure:"ai"`
	Server      *ServerConfig   `mapstructure:"server"`
}

type SourcesConfig struct {
	Timeout         time.Duration              `mapstructure:"timeout"`
	RapidAPIKeyFile string                     `mapstructure:"rapidapi-key-file"`
	Breaker         sources.BreakerConfig      `mapstructure:"breaker"`
	Udemy           sources.ConnectorConfig    `mapstructure:"udemy"`
	Coursera        sources.ConnectorConfig    `mapstructure:"coursera"`
	ClassCentral    sources.ConnectorConfig    `mapstructure:"class-central"`
	JobsAPI         sources.JobConnectorConfig `mapstructure:"jobs-api"`
	Indeed          sources.JobConnectorConfig `mapstructure:"indeed"`
	LinkedIn        sources.JobConnectorConfig `mapstructure:"linkedin"`
	StaticFallback  bool                       `mapstructure:"static-fallback"`
}

type PipelineConfig struct {
	TopN           int `mapstructure:"top-n"`
	PerSourceLimit int `mapstructure:"per-source-limit"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile    string `mapstructure:"api-key-file"`
	Model         string `mapstructure:"model"`
	MaxRetries    int    `mapstructure:"max-retries"`
	MaxCandidates int    `mapstructure:"max-candidates"`
	MaxLogLength  int    `mapstructure:"max-log-length"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "masar-recommender aggregates course and job catalogs and ranks them against a user profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("sources.rapidapi-key-file", "RAPIDAPI_KEY_FILE"); err != nil {
		log.Fatalf("binding RAPIDAPI_KEY_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is masar-recommender.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run and serve commands. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" && serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
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
