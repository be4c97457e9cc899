package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectToRedis func - Opens a client and checks the server answers PING
func ConnectToRedis(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("cannot estabished the connection")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		logrus.Error(err)
		return nil, err
	}

	logrus.Infof("Connected to redis %v/%v", addr, db)
	return client, nil
}

// DisconnectRedis func
func DisconnectRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logrus.Error(err)
	}
	logrus.Println("Connected with redis has closed")
}
