package configs

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Auth     `mapstructure:"auth"`
	Forkable `mapstructure:"forkable"`
	Store    `mapstructure:"store"`
	Postgres `mapstructure:"postgres"`
	Redis    `mapstructure:"redis"`
	Line     `mapstructure:"line"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Auth struct - inbound bearer token
type Auth struct {
	Token string `mapstructure:"token"`
}

// Forkable struct - upstream account and session tuning
type Forkable struct {
	Email            string        `mapstructure:"email"`
	Password         string        `mapstructure:"password"`
	Timezone         string        `mapstructure:"timezone"`
	Endpoint         string        `mapstructure:"endpoint"`
	SessionCookie    string        `mapstructure:"session_cookie"`
	Timeout          time.Duration `mapstructure:"timeout"`
	CutoffHour       int           `mapstructure:"cutoff_hour"`
	ExpiryMargin     time.Duration `mapstructure:"expiry_margin"`
	FallbackLifetime time.Duration `mapstructure:"fallback_lifetime"`
}

// Store struct - selects the session store adapter: postgres, redis or memory
type Store struct {
	Driver string `mapstructure:"driver"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Redis struct
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Line struct
type Line struct {
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
	NotifyUserID  string `mapstructure:"notify_user_id"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", "9089")

	viper.SetDefault("auth.token", "")

	viper.SetDefault("forkable.email", "")
	viper.SetDefault("forkable.password", "")
	viper.SetDefault("forkable.timezone", "America/Los_Angeles")
	viper.SetDefault("forkable.endpoint", "https://forkable.com/api/v2/graphql")
	viper.SetDefault("forkable.session_cookie", "_easyorder_session")
	viper.SetDefault("forkable.timeout", "0s")
	viper.SetDefault("forkable.cutoff_hour", 13)
	viper.SetDefault("forkable.expiry_margin", "1h")
	viper.SetDefault("forkable.fallback_lifetime", "23h")

	viper.SetDefault("store.driver", "postgres")

	viper.SetDefault("postgres.host", "")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("line.channel_secret", "")
	viper.SetDefault("line.channel_token", "")
	viper.SetDefault("line.notify_user_id", "")
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
		log.Println("No config file found, using defaults and environment")
	} else {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Println("Config file has changed: ", e.Name)
			if err := viper.Unmarshal(&config); err != nil {
				log.Println("Failed to reload config: ", err)
			}
		})
	}
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
