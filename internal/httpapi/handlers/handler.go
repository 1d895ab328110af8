package handlers

import (
	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/assistant"
	"github.com/rudra-raghu108/mist-backend/internal/chat"
	"github.com/rudra-raghu108/mist-backend/internal/config"
	"github.com/rudra-raghu108/mist-backend/internal/email"
	"github.com/rudra-raghu108/mist-backend/internal/store/rabbitmq"
	"github.com/rudra-raghu108/mist-backend/internal/store/redisstore"
	"github.com/rudra-raghu108/mist-backend/internal/training"
)

type Handler struct {
	DB          *gorm.DB
	Cfg         config.Config
	Redis       *redisstore.Store
	Rabbit      *rabbitmq.Publisher
	SMTPSetting email.SMTPConfig
	ChatSvc     *chat.Service
	TrainSvc    *training.Service
}

func NewHandler(db *gorm.DB, cfg config.Config, r *redisstore.Store, rabbit *rabbitmq.Publisher) *Handler {
	trainSvc := training.NewService(training.NewRepo(db))
	responder := assistant.NewResponder()
	chatSvc := chat.NewService(chat.NewRepo(db), trainSvc, responder)

	return &Handler{
		DB:     db,
		Cfg:    cfg,
		Redis:  r,
		Rabbit: rabbit,
		SMTPSetting: email.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		},
		ChatSvc:  chatSvc,
		TrainSvc: trainSvc,
	}
}
