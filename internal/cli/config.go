package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL    string
	IdentityFile string
	Output       string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:    getEnvOrDefault("DRAFTPAD_SERVER", "http://localhost:8080"),
		IdentityFile: getEnvOrDefault("DRAFTPAD_IDENTITY_FILE", defaultIdentityFile()),
		Output:       "text",
	}
}

// IdentityStore returns the identity store backed by the configured file
func (c *Config) IdentityStore() IdentityStore {
	return NewFileIdentityStore(c.IdentityFile)
}

func defaultIdentityFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".draftpad/identity.json"
	}
	return filepath.Join(home, ".draftpad", "identity.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
