package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default goaltrack data directory name (relative to home).
	DefaultDataDir = ".goaltrack"

	// ConfigFile is the configuration filename inside the data directory.
	ConfigFile = "config.yaml"
	// DBFile is the SQLite database filename inside the data directory.
	DBFile = "goaltrack.db"
	// TokenFile is the session token filename inside the data directory.
	TokenFile = "token"
)

// DataDir returns the goaltrack data directory for a given home directory.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir)
}

// ConfigFilePath returns the default configuration file path.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), ConfigFile)
}

// DBFilePath returns the default SQLite database path.
func DBFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), DBFile)
}

// TokenFilePath returns the default session token path.
func TokenFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), TokenFile)
}
