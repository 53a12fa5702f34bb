package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/goaltrack/goaltrack/internal/log"
)

// Credentials provides the opaque session token that gates goal loading and
// progress reconciliation. A missing token is not an error, it means there
// is no active session.
type Credentials interface {
	Token() (token string, ok bool)
}

// Static is a fixed in-memory credential, mainly useful for tests and for
// wiring a token passed directly via flag or environment.
type Static string

// Token returns the static token.
func (s Static) Token() (string, bool) { return string(s), s != "" }

// FileCredentialsConfig is the configuration for the file credentials.
type FileCredentialsConfig struct {
	// Path is the token file path (the CLI stand-in for the cookie-backed
	// accessor used by the web client).
	Path   string
	Logger log.Logger
}

func (c *FileCredentialsConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("token file path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "session.FileCredentials"})
	return nil
}

// FileCredentials reads the session token from a file and keeps the cached
// value current by watching the file's directory, so login/logout (token file
// created or removed) flips the session state without a restart.
type FileCredentials struct {
	path   string
	logger log.Logger

	mu    sync.RWMutex
	token string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileCredentials creates new file credentials and starts the watcher.
func NewFileCredentials(cfg FileCredentialsConfig) (*FileCredentials, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f := &FileCredentials{
		path:   cfg.Path,
		logger: cfg.Logger,
		done:   make(chan struct{}),
	}
	f.reload()

	// Watch the parent directory: the token file itself may not exist yet.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %w", err)
	}
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("could not create token directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("could not watch token directory: %w", err)
	}
	f.watcher = watcher

	go f.watch()

	return f, nil
}

// Token returns the current session token, false if there is no session.
func (f *FileCredentials) Token() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.token, f.token != ""
}

// Close stops the file watcher.
func (f *FileCredentials) Close() error {
	close(f.done)
	return f.watcher.Close()
}

func (f *FileCredentials) watch() {
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Name != f.path {
				continue
			}
			f.reload()

		case _, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			// Watcher errors are not actionable here, the next reload
			// still reads from disk.

		case <-f.done:
			return
		}
	}
}

func (f *FileCredentials) reload() {
	data, err := os.ReadFile(f.path)
	token := ""
	switch {
	case err == nil:
		token = strings.TrimSpace(string(data))
	case os.IsNotExist(err):
		// No session.
	default:
		f.logger.Errorf("Could not read token file: %s", err)
	}

	f.mu.Lock()
	changed := f.token != token
	f.token = token
	f.mu.Unlock()

	if changed {
		if token == "" {
			f.logger.Debugf("Session token removed")
		} else {
			f.logger.Debugf("Session token loaded")
		}
	}
}
