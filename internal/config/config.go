package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	PostsPerPage    int           `yaml:"posts_per_page" validate:"min=1"`
	TitleMaxLen     int           `yaml:"title_max_len" validate:"min=1"`
	MessageMaxLen   int           `yaml:"message_max_len" validate:"min=1"`
	FeedPreviewLen  int           `yaml:"feed_preview_len" validate:"min=1"`
	MaxRequestBytes int64         `yaml:"max_request_bytes" validate:"min=1"`
	MediaRoot       string        `yaml:"media_root" validate:"required"`
	TemplateDir     string        `yaml:"template_dir" validate:"required"`
	LogLevel        string        `yaml:"log_level"`
	LogJSON         bool          `yaml:"log_json"`
	ReplyCountTTL   time.Duration `yaml:"reply_count_ttl"` // seconds, multiplied at use site
}

type Private struct {
	Pg    Pg    `yaml:"pg" validate:"required"`
	Redis Redis `yaml:"redis"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"min=1"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

// Redis is optional; an empty Addr disables the reply-count cache.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (c *Config) applyDefaults() {
	p := &c.Public
	if p.PostsPerPage == 0 {
		p.PostsPerPage = 30
	}
	if p.TitleMaxLen == 0 {
		p.TitleMaxLen = 30
	}
	if p.MessageMaxLen == 0 {
		p.MessageMaxLen = 50_000
	}
	if p.FeedPreviewLen == 0 {
		p.FeedPreviewLen = 2_700
	}
	if p.MaxRequestBytes == 0 {
		p.MaxRequestBytes = 20 << 20 // 20 MiB
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.ReplyCountTTL == 0 {
		p.ReplyCountTTL = 5
	}
}
