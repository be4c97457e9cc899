package protocal

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gautamg795/forkable-menu/configs"
	httpAdapter "github.com/gautamg795/forkable-menu/internal/adapters/input/http"
	"github.com/gautamg795/forkable-menu/internal/adapters/output/forkable"
	lineAdapter "github.com/gautamg795/forkable-menu/internal/adapters/output/line"
	"github.com/gautamg795/forkable-menu/internal/adapters/output/memory"
	"github.com/gautamg795/forkable-menu/internal/adapters/output/postgres"
	redisStore "github.com/gautamg795/forkable-menu/internal/adapters/output/redis"
	"github.com/gautamg795/forkable-menu/internal/application"
	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/output"
	"github.com/gautamg795/forkable-menu/pkg/database_driver/gorm"
	redisDriver "github.com/gautamg795/forkable-menu/pkg/database_driver/redis"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	conf := configs.GetViper()

	if conf.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Info(conf.App.Env)

	app := fiber.New(fiber.Config{
		AppName:      "forkable-menu",
		ErrorHandler: httpAdapter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	store, closeStore, err := newSessionStore(conf)
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			closeStore()
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Wire up the hexagonal architecture layers
	// Output adapters (Forkable API, session store behind the cache)
	forkableClient := forkable.NewForkableClientAdapter(conf.Forkable)
	cache := application.NewSessionCache(store)
	// Application services (use cases)
	lunchSrv := application.NewLunchService(forkableClient, cache, application.AccountConfig{
		Email:      conf.Forkable.Email,
		Password:   conf.Forkable.Password,
		Timezone:   conf.Forkable.Timezone,
		CutoffHour: conf.Forkable.CutoffHour,
	})

	var lineClient output.LineClient
	if conf.Line.ChannelToken != "" {
		client, err := lineAdapter.NewLineClientAdapter(conf.Line.ChannelToken)
		if err != nil {
			return err
		}
		lineClient = client
	} else {
		logrus.Warn("LINE channel token is not configured, LINE delivery is disabled")
	}
	notifier := application.NewLunchNotifierService(lunchSrv, lineClient, conf.Line.NotifyUserID)

	// Input adapters (HTTP handlers)
	hdl := httpAdapter.New(lunchSrv, notifier, store)
	auth := httpAdapter.BearerAuth(conf.Auth.Token)

	app.Get("/swagger/*", swagger.HandlerDefault) // default
	app.Get("/health", hdl.HealthCheck)
	app.Get("/", auth, hdl.GetLunch)

	api := app.Group("/v1/api", auth)
	{
		api.Get("/lunch", hdl.GetLunch)
		api.Post("/lunch/notify", hdl.NotifyLunch)
	}

	if lineClient != nil && conf.Line.ChannelSecret != "" {
		lineWebhookSrv := application.NewLineWebhookService(lineClient, lunchSrv)
		lineWebhookHdl := httpAdapter.NewLineWebhookHandler(lineWebhookSrv, conf.Line.ChannelSecret)
		webhook := app.Group("/webhook")
		{
			webhook.Post("/line", lineWebhookHdl.HandleWebhook)
		}
	}

	logrus.Println("Listerning on port: ", conf.App.Port)
	return app.Listen(":" + conf.App.Port)
}

// newSessionStore opens the session store selected by store.driver and returns its closer
func newSessionStore(conf *configs.Config) (output.SessionStore, func(), error) {
	switch conf.Store.Driver {
	case "postgres", "":
		dbConGorm, err := gorm.ConnectToPostgreSQL(
			conf.Postgres.Host,
			conf.Postgres.Port,
			conf.Postgres.Username,
			conf.Postgres.Password,
			conf.Postgres.DbName,
			conf.Postgres.SSLMode,
		)
		if err != nil {
			return nil, nil, err
		}
		store, err := postgres.NewSessionStore(dbConGorm.Postgres)
		if err != nil {
			gorm.DisconnectPostgres(dbConGorm.Postgres)
			return nil, nil, err
		}
		return store, func() { gorm.DisconnectPostgres(dbConGorm.Postgres) }, nil

	case "redis":
		client, err := redisDriver.ConnectToRedis(conf.Redis.Addr, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return redisStore.NewSessionStore(client), func() { redisDriver.DisconnectRedis(client) }, nil

	case "memory":
		logrus.Warn("Using in-memory session store, sessions are lost on restart")
		return memory.NewMemorySessionStore(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown store driver %q", domain.ErrInvalidConfig, conf.Store.Driver)
	}
}
