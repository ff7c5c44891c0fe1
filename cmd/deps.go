package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/smart-hire/internal/ai"
	"github.com/spigell/smart-hire/internal/ai/gemini"
	"github.com/spigell/smart-hire/internal/assignments"
	"github.com/spigell/smart-hire/internal/logger"
	"github.com/spigell/smart-hire/internal/render"
	"github.com/spigell/smart-hire/internal/secrets"
	"github.com/spigell/smart-hire/internal/smarthire"
)

const (
	assignmentsBackendFile   = "file"
	assignmentsBackendSQLite = "sqlite"

	defaultAssignmentsFile   = app + "-assignments.json"
	defaultAssignmentsSQLite = app + "-assignments.db"
)

// deps is what every command needs: the decoded config, a logger, the backend client
// and the output settings.
type deps struct {
	config *Config
	logger *zap.Logger
	client *smarthire.Client
	format render.Format
	out    io.Writer
}

// prepare builds the command dependencies and stops the process when that fails.
func prepare(cmd *cobra.Command) *deps {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	format, err := render.ParseFormat(config.Output)
	if err != nil {
		l.Fatal("parsing output format", zap.Error(err))
	}

	client, err := newClient(config.Backend, l)
	if err != nil {
		l.Fatal("creating a backend client", zap.Error(err))
	}

	l = logger.WithBackend(l, string(client.Profile()), client.APIURL)
	l.Debug("backend client is ready", zap.String("command", cmd.Name()), zap.String("version", version))

	return &deps{
		config: config,
		logger: l,
		client: client,
		format: format,
		out:    cmd.OutOrStdout(),
	}
}

func newClient(cfg *BackendConfig, l *zap.Logger) (*smarthire.Client, error) {
	profile, err := smarthire.ParseProfile(cfg.Profile)
	if err != nil {
		return nil, err
	}

	client := smarthire.New(l, profile, cfg.URL)

	if cfg.Timeout > 0 {
		client.HTTPClient.Timeout = cfg.Timeout
	}
	if cfg.TopK > 0 {
		client.TopK = cfg.TopK
	}
	if cfg.MinTextLength > 0 {
		client.MinTextLength = cfg.MinTextLength
	}
	if cfg.UserAgent != "" {
		client.UserAgent = cfg.UserAgent
	}

	return client, nil
}

// write prints a value in the configured output format.
func (d *deps) write(value any, view *render.Node) {
	if err := render.Write(d.out, d.format, value, view); err != nil {
		d.logger.Fatal("writing output", zap.Error(err))
	}
}

// openAssignments opens the configured assignment store. The returned close
// function must be called when the log is no longer needed.
func (d *deps) openAssignments() (*assignments.Log, func() error, error) {
	cfg := d.config.Assignments
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))

	switch backend {
	case "", assignmentsBackendFile:
		path := cfg.Path
		if path == "" {
			path = defaultAssignmentsFile
		}
		d.logger.Debug("using file assignments store", zap.String("path", path))
		return assignments.NewLog(assignments.NewFileStore(path)), func() error { return nil }, nil
	case assignmentsBackendSQLite:
		path := cfg.Path
		if path == "" {
			path = defaultAssignmentsSQLite
		}
		store, err := assignments.NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		d.logger.Debug("using sqlite assignments store", zap.String("path", path))
		return assignments.NewLog(store), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported assignments backend: %s", cfg.Backend)
	}
}

// newSummarizer returns nil when the recruiter summary is disabled.
func (d *deps) newSummarizer(ctx context.Context) (ai.Summarizer, error) {
	cfg := d.config.AI
	if !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != ai.ProviderGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai summary is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithAI(d.logger, ai.ProviderGemini, generator.Model())

	return gemini.NewSummarizer(generator, genLogger, cfg.Gemini.MaxLogLength), nil
}

// describeError turns client errors into the message shown to the user.
func describeError(err error) string {
	var (
		validation *smarthire.ValidationError
		network    *smarthire.NetworkError
	)

	switch {
	case errors.As(err, &validation):
		return validation.Error()
	case errors.As(err, &network):
		return "Cannot connect to backend service. Check that it is running."
	default:
		return err.Error()
	}
}

func fatal(l *zap.Logger, step string, err error) {
	l.Fatal(step, zap.String("reason", describeError(err)), zap.Error(err))
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
