package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"bulletinboard/internal/config"
	"bulletinboard/internal/handlers"
	"bulletinboard/internal/repositories"
	"bulletinboard/internal/services"
	"bulletinboard/utils"
)

type application struct {
	cfg      config.Config
	errorLog *log.Logger
	infoLog  *log.Logger

	adHandler       *handlers.AdHandler
	adImageHandler  *handlers.AdImageHandler
	adminHandler    *handlers.AdminHandler
	categoryHandler *handlers.CategoryHandler
	userHandler     *handlers.UserHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, errorLog, infoLog *log.Logger) (*application, error) {
	adRepo := &repositories.AdRepository{DB: db}
	imageRepo := &repositories.AdImageRepository{DB: db}
	categoryRepo := &repositories.CategoryRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}

	storage, err := buildStorage(cfg)
	if err != nil {
		return nil, err
	}

	var names *services.NameCache
	if rdb != nil {
		names = &services.NameCache{RDB: rdb, TTL: time.Duration(cfg.Redis.TTLSecs) * time.Second}
	}

	gate := &services.AntiSpamGate{
		MinTitleLength:       cfg.AntiSpam.MinTitleLength,
		MinDescriptionLength: cfg.AntiSpam.MinDescriptionLength,
		MaxAdsPerHour:        cfg.AntiSpam.MaxAdsPerHour,
		Ads:                  adRepo,
	}

	adService := &services.AdService{
		Ads:        adRepo,
		Images:     imageRepo,
		Categories: categoryRepo,
		Users:      userRepo,
		Gate:       gate,
		Storage:    storage,
		Names:      names,
	}
	imageService := &services.AdImageService{
		Ads:     adRepo,
		Images:  imageRepo,
		Storage: storage,
	}
	adminService := &services.AdminService{Ads: adService}
	categoryService := &services.CategoryService{Categories: categoryRepo, Names: names}
	userService := &services.UserService{Users: userRepo, Names: names}

	return &application{
		cfg:             cfg,
		errorLog:        errorLog,
		infoLog:         infoLog,
		adHandler:       &handlers.AdHandler{Service: adService},
		adImageHandler:  &handlers.AdImageHandler{Service: imageService},
		adminHandler:    &handlers.AdminHandler{Service: adminService},
		categoryHandler: &handlers.CategoryHandler{Service: categoryService},
		userHandler:     &handlers.UserHandler{Service: userService},
	}, nil
}

func buildStorage(cfg config.Config) (services.ImageStorage, error) {
	switch cfg.Storage.Kind {
	case "local":
		return &utils.LocalStorage{Dir: cfg.Storage.LocalDir, BaseURL: cfg.Storage.BaseURL}, nil
	case "s3":
		return utils.NewS3Storage(
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
			os.Getenv("S3_ACCESS_KEY"),
			os.Getenv("S3_SECRET_KEY"),
			cfg.Storage.Bucket,
			cfg.Storage.Folder,
			cfg.Storage.PublicURL,
		)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", cfg.Storage.Kind)
	}
}
