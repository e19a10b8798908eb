// Package config loads quicknotes settings from a yaml file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/quicknotes/pkg/models"
)

const (
	// EnvPrefix prefixes every environment override, e.g. QUICKNOTES_LOG_LEVEL
	EnvPrefix = "QUICKNOTES"
	// AppDir is the directory under ~/.config holding config.yaml
	AppDir = "quicknotes"
)

// dateLayouts are the accepted created_at formats, tried in order
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// Loader reads settings with viper
type Loader struct {
	v    *viper.Viper
	file string
	home func() (string, error)
}

// Option configures a Loader
type Option func(*Loader)

// WithFile reads settings from an explicit file. A missing file is an error.
func WithFile(path string) Option {
	return func(l *Loader) {
		l.file = path
	}
}

// WithHome overrides how the home directory is found
func WithHome(home func() (string, error)) Option {
	return func(l *Loader) {
		l.home = home
	}
}

// WithFlag binds a command-line flag to a settings key. The flag wins over the
// file and the environment once it is set.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(l *Loader) {
		if flag != nil {
			_ = l.v.BindPFlag(key, flag)
		}
	}
}

// New creates a Loader
func New(opts ...Option) *Loader {
	l := &Loader{
		v:    viper.New(),
		home: os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultPath returns ~/.config/quicknotes/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDir, "config.yaml"), nil
}

// Load reads the settings. Keys missing from the file keep their defaults,
// and seed notes fall back to the defaults only when the file has no notes key.
func (l *Loader) Load() (*models.Settings, error) {
	if l.file != "" {
		l.v.SetConfigFile(l.file)
	} else {
		home, err := l.home()
		if err != nil {
			return nil, fmt.Errorf("failed to find home directory: %w", err)
		}
		l.v.AddConfigPath(filepath.Join(home, ".config", AppDir))
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	defaults := models.DefaultSettings()
	setDefaults(l.v, defaults)

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	settings := *defaults
	settings.Notes = nil
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToTimeHook(),
	)
	if err := l.v.Unmarshal(&settings, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if !l.v.IsSet("notes") {
		settings.Notes = defaults.Notes
	}

	return &settings, nil
}

// ConfigFileUsed returns the file the last Load read, if any
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func setDefaults(v *viper.Viper, s *models.Settings) {
	v.SetDefault("ui.accent_color", s.UI.AccentColor)
	v.SetDefault("ui.muted_color", s.UI.MutedColor)
	v.SetDefault("ui.width", s.UI.Width)
	v.SetDefault("labels.add_heading", s.Labels.AddHeading)
	v.SetDefault("labels.edit_heading", s.Labels.EditHeading)
	v.SetDefault("labels.add_button", s.Labels.AddButton)
	v.SetDefault("labels.edit_button", s.Labels.EditButton)
	v.SetDefault("layout.path", s.Layout.Path)
	v.SetDefault("log.file", s.Log.File)
	v.SetDefault("log.level", s.Log.Level)
}

// stringToTimeHook decodes created_at strings. Date-only values are local midnight.
func stringToTimeHook() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Time{}) {
			return data, nil
		}
		return ParseDate(data.(string))
	}
}

// ParseDate parses a note date in any of the accepted layouts
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
}

// Dump writes settings as yaml
func Dump(w io.Writer, s *models.Settings) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return encoder.Close()
}
