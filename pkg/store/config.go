package store

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/mytodo/pkg/gesture"
)

type Config interface {
	BasePath() string
	Backend() string
	Locale() string
	Sort() string
	LogLevel() string
	LogFormat() string
	ServeAddr() string
	Gesture() gesture.Thresholds
}

// LoadConfig reads .mytodo.{yaml,toml,json} from $MYTODO_CONFIG_PATH, the
// working directory or $HOME, overlaid with MYTODO_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()

	defaults := gesture.DefaultThresholds()
	v.SetDefault("path", "~/.mytodo.db")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("locale", "und")
	v.SetDefault("sort", "created")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("serve.addr", "127.0.0.1:8080")
	v.SetDefault("gesture.tapSlop", defaults.TapSlop)
	v.SetDefault("gesture.tapMaxDuration", defaults.TapMaxDuration)
	v.SetDefault("gesture.longPress", defaults.LongPress)
	v.SetDefault("gesture.swipeMinDistance", defaults.SwipeMinDistance)
	v.SetDefault("gesture.swipeMaxDrift", defaults.SwipeMaxDrift)
	v.SetDefault("gesture.swipeMinVelocity", defaults.SwipeMinVelocity)
	v.SetDefault("gesture.archiveDelay", defaults.ArchiveDelay)

	v.SetConfigName(".mytodo") // .yaml is implicit
	v.SetEnvPrefix("MYTODO")
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", "MYTODO_LOG_LEVEL")
	_ = v.BindEnv("log.format", "MYTODO_LOG_FORMAT")
	_ = v.BindEnv("serve.addr", "MYTODO_SERVE_ADDR")

	if override := os.Getenv("MYTODO_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:       path,
		BackendKey: v.GetString("backend"),
		LocaleTag:  v.GetString("locale"),
		SortMode:   v.GetString("sort"),
		Level:      v.GetString("log.level"),
		Format:     v.GetString("log.format"),
		Addr:       v.GetString("serve.addr"),
		Thresholds: gesture.Thresholds{
			TapSlop:          v.GetFloat64("gesture.tapSlop"),
			TapMaxDuration:   v.GetDuration("gesture.tapMaxDuration"),
			LongPress:        v.GetDuration("gesture.longPress"),
			SwipeMinDistance: v.GetFloat64("gesture.swipeMinDistance"),
			SwipeMaxDrift:    v.GetFloat64("gesture.swipeMaxDrift"),
			SwipeMinVelocity: v.GetFloat64("gesture.swipeMinVelocity"),
			ArchiveDelay:     v.GetDuration("gesture.archiveDelay"),
		},
	}, nil
}

// StaticConfig is a Config built in code, for tests and embedding.
func StaticConfig(path, backend string) Config {
	return &fileConfig{
		Path:       path,
		BackendKey: backend,
		LocaleTag:  "und",
		SortMode:   "created",
		Level:      "warn",
		Format:     "text",
		Addr:       "127.0.0.1:0",
		Thresholds: gesture.DefaultThresholds(),
	}
}

type fileConfig struct {
	Path       string             `json:"path"`
	BackendKey string             `json:"backend"`
	LocaleTag  string             `json:"locale"`
	SortMode   string             `json:"sort"`
	Level      string             `json:"logLevel"`
	Format     string             `json:"logFormat"`
	Addr       string             `json:"serveAddr"`
	Thresholds gesture.Thresholds `json:"gesture"`
}

func (f *fileConfig) BasePath() string  { return f.Path }
func (f *fileConfig) Backend() string   { return f.BackendKey }
func (f *fileConfig) Locale() string    { return f.LocaleTag }
func (f *fileConfig) Sort() string      { return f.SortMode }
func (f *fileConfig) LogLevel() string  { return f.Level }
func (f *fileConfig) LogFormat() string { return f.Format }
func (f *fileConfig) ServeAddr() string { return f.Addr }

func (f *fileConfig) Gesture() gesture.Thresholds {
	th := f.Thresholds
	if th.LongPress <= 0 || th.TapMaxDuration <= 0 {
		return gesture.DefaultThresholds()
	}
	return th
}
