package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/miiv/pkg/command"
	"github.com/mattsolo1/miiv/pkg/materialize"
	"github.com/mattsolo1/miiv/pkg/scheme"
	"github.com/mattsolo1/miiv/pkg/settings"
	"github.com/mattsolo1/miiv/pkg/workspace"
)

// LockFile is the name of the cross-process lock inside the data directory.
const LockFile = "workspace.lock"

// Service owns everything a command needs for one process
type Service struct {
	Config  *Config
	Logger  *logrus.Logger
	Store   settings.Store
	Scheme  *scheme.Node
	Machine *workspace.Machine
	Router  *command.Router
}

// Config holds service configuration
type Config struct {
	DataDir    string `mapstructure:"data_dir"`
	SchemeFile string `mapstructure:"scheme_file"`
	LogLevel   string `mapstructure:"log_level"`
	Verbose    bool   `mapstructure:"verbose"`
}

// New builds the service. Failing to load the scheme is fatal.
func New(config *Config) (*Service, error) {
	if config == nil || strings.TrimSpace(config.DataDir) == "" {
		return nil, fmt.Errorf("data directory is not configured")
	}

	logger, err := newLogger(config)
	if err != nil {
		return nil, err
	}
	entry := logrus.NewEntry(logger)

	root, err := loadScheme(config.SchemeFile)
	if err != nil {
		return nil, err
	}
	entry.WithFields(logrus.Fields{
		"scheme":  root.Name,
		"version": root.Version(),
	}).Debug("Loaded scheme")

	store, err := settings.NewSQLiteStore(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	machine, err := workspace.NewMachine(store, root, materialize.New(entry),
		workspace.WithLogger(entry),
		workspace.WithFileLock(filepath.Join(config.DataDir, LockFile)),
	)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create state machine: %w", err)
	}

	return &Service{
		Config:  config,
		Logger:  logger,
		Store:   store,
		Scheme:  root,
		Machine: machine,
		Router:  command.New(command.Deps{Machine: machine, Logger: entry, Now: time.Now}),
	}, nil
}

// Dispatch forwards args to the command router.
func (s *Service) Dispatch(args []string) command.Response {
	return s.Router.Dispatch(args)
}

// Close releases the settings store.
func (s *Service) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

func loadScheme(path string) (*scheme.Node, error) {
	if path == "" {
		root, err := scheme.Default()
		if err != nil {
			return nil, fmt.Errorf("load default scheme: %w", err)
		}
		return root, nil
	}
	root, err := scheme.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load scheme %s: %w", path, err)
	}
	return root, nil
}

func newLogger(config *Config) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level := logrus.WarnLevel
	if config.LogLevel != "" {
		parsed, err := logrus.ParseLevel(config.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
		}
		level = parsed
	}
	if config.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger, nil
}
