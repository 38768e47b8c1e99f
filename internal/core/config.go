package core

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config stores client settings shared by all commands.
type Config struct {
	Version int `json:"version"`
	// DBPath is the shared backend database file. All clients on the
	// machine point at the same file.
	DBPath string `json:"dbPath,omitempty"`
	// MasterKey, when set, unlocks any password-gated room.
	MasterKey string `json:"masterKey,omitempty"`
	// MuteMentions holds glob patterns; mention notifications whose
	// recipient label matches any pattern are not surfaced to the OS.
	MuteMentions []string `json:"muteMentions,omitempty"`
}

// ConfigDir returns the dsmm dot directory, creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".dsmm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ReadConfig reads the client config, returning defaults if absent.
func ReadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig()
		}
		return Config{}, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	if config.DBPath == "" {
		fallback, err := defaultConfig()
		if err != nil {
			return Config{}, err
		}
		config.DBPath = fallback.DBPath
	}
	return config, nil
}

// WriteConfig writes the client config to disk.
func WriteConfig(config Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if config.Version == 0 {
		config.Version = 1
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	return Config{Version: 1, DBPath: filepath.Join(dir, "chat.db")}, nil
}
