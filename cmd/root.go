package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/smart-hire/internal/ai"
	"github.com/spigell/smart-hire/internal/filtering"
)

const (
	app = "smart-hire"
)

type Config struct {
	Backend     *BackendConfig     `mapstructure:"backend"`
	Assignments *AssignmentsConfig `mapstructure:"assignments"`
	Output      string             `mapstructure:"output"`
	Filters     *filtering.Config  `mapstructure:"filters"`
	Batch       *BatchConfig       `mapstructure:"batch"`
	AI          *ai.Config         `mapstructure:"ai"`
}

type BackendConfig struct {
	Profile       string        `mapstructure:"profile"`
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	TopK          int           `mapstructure:"top-k"`
	MinTextLength int           `mapstructure:"min-text-length"`
	UserAgent     string        `mapstructure:"user-agent"`
}

type AssignmentsConfig struct {
	// Backend is either "file" or "sqlite".
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "smart-hire is a cli for matching resumes to job roles with a resume analysis backend",
		// Errors are logged by the commands themselves.
		SilenceUsage: true,
	}
)

// Execute executes the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	envs := map[string]string{
		"backend.url":            "SMART_HIRE_API_URL",
		"backend.profile":        "SMART_HIRE_PROFILE",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("backend.profile", "dashboard")
	viper.SetDefault("backend.timeout", "30s")
	viper.SetDefault("backend.top-k", 5)
	viper.SetDefault("backend.min-text-length", 20)
	viper.SetDefault("assignments.backend", assignmentsBackendFile)
	viper.SetDefault("output", "text")
	viper.SetDefault("batch.concurrency", 2)
	viper.SetDefault("ai.provider", ai.ProviderGemini)
	viper.SetDefault("ai.gemini.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is smart-hire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format: text, json or yaml")
	rootCmd.PersistentFlags().String("api-url", "", "backend base URL (default depends on the profile)")
	rootCmd.PersistentFlags().String("profile", "dashboard", "backend profile: dashboard (/predict) or service (/analyze)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("backend.url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("backend.profile", rootCmd.PersistentFlags().Lookup("profile"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default, so only an explicit or broken config file is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Backend == nil {
		config.Backend = &BackendConfig{}
	}
	if config.Assignments == nil {
		config.Assignments = &AssignmentsConfig{}
	}
	if config.Batch == nil {
		config.Batch = &BatchConfig{}
	}
	if config.AI == nil {
		config.AI = &ai.Config{}
	}

	return config, nil
}
