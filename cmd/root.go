package cmd

import (
	"errors"
	"log"
	"strings"

	"cvmatch/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "cvmatch"
)

type Config struct {
	BaseURL   string         `mapstructure:"base-url"`
	UserAgent string         `mapstructure:"user-agent"`
	TokenFile string         `mapstructure:"token-file"`
	Advise    *AdviseConfig  `mapstructure:"advise"`
	Compare   *CompareConfig `mapstructure:"compare"`
}

type CompareConfig struct {
	Type         string `mapstructure:"type"`
	MaxPDFPages  int    `mapstructure:"max-pdf-pages"`
	TopNKeywords int    `mapstructure:"top-n-keywords"`
}

type AdviseConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cvmatch is a simple cli for comparing resumes against a job description via the comparison backend",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "CVMATCH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding CVMATCH_TOKEN_FILE environment variable: %v", err)
	}

	if err := viper.BindEnv("base-url", "CVMATCH_BASE_URL"); err != nil {
		log.Fatalf("binding CVMATCH_BASE_URL environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cvmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("base-url", "", "base URL of the comparison backend")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The CLI works from flags alone, so a missing default config is fine.
	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

// resolveToken loads the bearer token from the configured credential store.
func resolveToken(config *Config) (string, error) {
	return tokenStore(config).Read()
}

func tokenStore(config *Config) secrets.Store {
	tokenFile := ""
	if config != nil {
		tokenFile = strings.TrimSpace(config.TokenFile)
	}
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	return secrets.NewFileStore("backend token", tokenFile)
}
