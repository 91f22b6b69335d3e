package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ConfigPathEnv adds a directory to the config file search path.
const ConfigPathEnv = "STUDYPLAN_CONFIG_PATH"

// Config describes where and how planner state is stored.
type Config interface {
	BasePath() string
	Backend() string
	SQLitePath() string
	RedisURL() string
	LogLevel() string
	LogFormat() string
	PollInterval() time.Duration
	// File is the config file that was read, empty when none was found.
	File() string
}

// LoadConfig reads .studyplan.yaml from $STUDYPLAN_CONFIG_PATH, the working
// directory or $HOME, with STUDYPLAN_* environment overrides. A .env file in
// the working directory is loaded first.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("path", "~/.studyplan")
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("sqlite", "")
	v.SetDefault("redis", "redis://localhost:6379/0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.poll", "30s")

	v.SetConfigName(".studyplan") // .yaml is implicit
	v.SetEnvPrefix("STUDYPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	sqlitePath, err := homedir.Expand(v.GetString("sqlite"))
	if err != nil {
		return nil, err
	}
	if sqlitePath == "" {
		sqlitePath = filepath.Join(base, "studyplan.db")
	}

	return &fileConfig{
		Path:     base,
		Store:    v.GetString("backend"),
		SQLite:   sqlitePath,
		Redis:    v.GetString("redis"),
		Level:    v.GetString("log.level"),
		Format:   v.GetString("log.format"),
		Poll:     v.GetDuration("watch.poll"),
		UsedFile: v.ConfigFileUsed(),
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	Store    string        `json:"backend"`
	SQLite   string        `json:"sqlite"`
	Redis    string        `json:"redis"`
	Level    string        `json:"logLevel"`
	Format   string        `json:"logFormat"`
	Poll     time.Duration `json:"poll"`
	UsedFile string        `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string            { return f.Path }
func (f *fileConfig) Backend() string             { return f.Store }
func (f *fileConfig) SQLitePath() string          { return f.SQLite }
func (f *fileConfig) RedisURL() string            { return f.Redis }
func (f *fileConfig) LogLevel() string            { return f.Level }
func (f *fileConfig) LogFormat() string           { return f.Format }
func (f *fileConfig) PollInterval() time.Duration { return f.Poll }
func (f *fileConfig) File() string                { return f.UsedFile }
