package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/filetug/estorage/pkg/fsutils"
	"gopkg.in/yaml.v3"
)

const UserDir = "~/.filetug"

const FileName = "estorage.yaml"

var osUserHomeDir = os.UserHomeDir
var yamlMarshal = yaml.Marshal

type Settings struct {
	LogLevel string  `yaml:"log_level"`
	LogFile  string  `yaml:"log_file,omitempty"`
	Preview  Preview `yaml:"preview"`
	FTP      FTP     `yaml:"ftp"`
}

type Preview struct {
	Style    string `yaml:"style"`
	MaxBytes int    `yaml:"max_bytes"`
}

type FTP struct {
	Timeout     time.Duration `yaml:"timeout"`
	ExplicitTLS bool          `yaml:"explicit_tls,omitempty"`
	ImplicitTLS bool          `yaml:"implicit_tls,omitempty"`
}

func Defaults() Settings {
	return Settings{
		LogLevel: "info",
		Preview: Preview{
			Style:    "dracula",
			MaxBytes: 10 * 1024,
		},
		FTP: FTP{
			Timeout: 5 * time.Second,
		},
	}
}

// GetUserDir returns the expanded settings directory. On error the
// unexpanded UserDir is returned together with the error.
func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

func DefaultPath() (string, error) {
	dir, err := GetUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads settings from path on top of Defaults. A missing file is not an
// error.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	if err := fsutils.ReadYAMLFile(path, false, &s); err != nil {
		return Defaults(), fmt.Errorf("failed to load settings from %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Defaults(), fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Preview.MaxBytes < 0 {
		return fmt.Errorf("preview.max_bytes must not be negative, got %d", s.Preview.MaxBytes)
	}
	if s.FTP.Timeout < 0 {
		return fmt.Errorf("ftp.timeout must not be negative, got %v", s.FTP.Timeout)
	}
	if s.FTP.ExplicitTLS && s.FTP.ImplicitTLS {
		return fmt.Errorf("ftp.explicit_tls and ftp.implicit_tls are mutually exclusive")
	}
	return nil
}

func (s Settings) Marshal() ([]byte, error) {
	return yamlMarshal(s)
}

func Save(path string, s Settings) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	exists, err := fsutils.DirExists(dir)
	if err != nil {
		return err
	}
	if !exists {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
