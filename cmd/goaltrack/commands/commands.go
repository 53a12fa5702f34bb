package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/goaltrack/goaltrack/internal/backend"
	"github.com/goaltrack/goaltrack/internal/backend/client"
	"github.com/goaltrack/goaltrack/internal/backend/local"
	"github.com/goaltrack/goaltrack/internal/config"
	"github.com/goaltrack/goaltrack/internal/conventions"
	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/session"
	"github.com/goaltrack/goaltrack/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigFile string
	DBPath     string
	BackendURL string
	TokenFile  string
	Workspace  string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	defaultConfigFile := conventions.ConfigFilePath(homedir.HomeDir())
	app.Flag("config", "Path to the configuration file.").Envar("GOALTRACK_CONFIG").Default(defaultConfigFile).StringVar(&c.ConfigFile)
	app.Flag("db-path", "Path to the SQLite database file.").Envar("GOALTRACK_DB_PATH").StringVar(&c.DBPath)
	app.Flag("backend-url", "Remote backend URL, local storage is used when unset.").Envar("GOALTRACK_BACKEND_URL").StringVar(&c.BackendURL)
	app.Flag("token-file", "Path to the session token file.").Envar("GOALTRACK_TOKEN_FILE").StringVar(&c.TokenFile)
	app.Flag("workspace", "Workspace id used to scope goal loading.").Envar("GOALTRACK_WORKSPACE").StringVar(&c.Workspace)

	return c
}

// Settings resolves the effective configuration: explicit flags win over the
// config file, the config file wins over built-in defaults. A missing config
// file is fine.
func (c *RootCommand) Settings(ctx context.Context) (config.Config, error) {
	cfg := config.Config{}

	if _, err := os.Stat(c.ConfigFile); err == nil {
		repo := config.NewYAMLRepository(os.DirFS(filepath.Dir(c.ConfigFile)))
		cfg, err = repo.GetConfig(ctx, filepath.Base(c.ConfigFile))
		if err != nil {
			return config.Config{}, fmt.Errorf("could not load config file %s: %w", c.ConfigFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("could not stat config file %s: %w", c.ConfigFile, err)
	}

	if c.DBPath != "" {
		cfg.DBPath = c.DBPath
	}
	if c.BackendURL != "" {
		cfg.BackendURL = c.BackendURL
	}
	if c.TokenFile != "" {
		cfg.TokenFile = c.TokenFile
	}
	if c.Workspace != "" {
		cfg.WorkspaceID = c.Workspace
	}

	if cfg.DBPath == "" {
		cfg.DBPath = conventions.DBFilePath(homedir.HomeDir())
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = conventions.TokenFilePath(homedir.HomeDir())
	}

	return cfg, nil
}

// newCredentials creates the session credentials from the token file.
func (c *RootCommand) newCredentials(cfg config.Config) (*session.FileCredentials, error) {
	creds, err := session.NewFileCredentials(session.FileCredentialsConfig{
		Path:   cfg.TokenFile,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create credentials: %w", err)
	}

	return creds, nil
}

// newBackend creates the goal backend: HTTP client when a backend URL is
// configured, local SQLite storage otherwise. The returned close function
// must be called when done.
func (c *RootCommand) newBackend(ctx context.Context, cfg config.Config, creds session.Credentials) (backend.Backend, func() error, error) {
	if cfg.BackendURL != "" {
		b, err := client.NewBackend(client.BackendConfig{
			BaseURL:     cfg.BackendURL,
			Credentials: creds,
			Logger:      c.Logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create backend client: %w", err)
		}
		return b, func() error { return nil }, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not create repository: %w", err)
	}

	b, err := local.NewBackend(local.BackendConfig{
		Repository: repo,
		Logger:     c.Logger,
	})
	if err != nil {
		repo.Close()
		return nil, nil, fmt.Errorf("could not create local backend: %w", err)
	}

	return b, repo.Close, nil
}

// goalFilter returns the goal filter for the configured workspace.
func goalFilter(cfg config.Config) *backend.GoalFilter {
	if cfg.WorkspaceID == "" {
		return nil
	}
	return &backend.GoalFilter{WorkspaceID: cfg.WorkspaceID}
}
