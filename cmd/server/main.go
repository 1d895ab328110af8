package main

import (
	"context"
	"log"
	"time"

	"github.com/rudra-raghu108/mist-backend/internal/chat"
	"github.com/rudra-raghu108/mist-backend/internal/config"
	"github.com/rudra-raghu108/mist-backend/internal/db"
	"github.com/rudra-raghu108/mist-backend/internal/httpapi"
	"github.com/rudra-raghu108/mist-backend/internal/models"
	"github.com/rudra-raghu108/mist-backend/internal/store/rabbitmq"
	"github.com/rudra-raghu108/mist-backend/internal/store/redisstore"
	"github.com/rudra-raghu108/mist-backend/internal/training"
)

func main() {
	cfg := config.Load()

	gdb := db.Connect(cfg.DBDSN)
	if err := gdb.AutoMigrate(
		&models.User{},
		&chat.Session{},
		&chat.Message{},
		&training.Example{},
		&training.CustomResponse{},
		&training.Profile{},
		&training.Job{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rds.Ping(ctx); err != nil {
		log.Printf("redis unavailable at startup: %v", err)
	}
	cancel()

	rabbit, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
	if err != nil {
		log.Fatalf("rabbit connect: %v", err)
	}
	defer rabbit.Close()

	r := httpapi.NewRouter(gdb, cfg, rds, rabbit)

	log.Printf("server listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
