package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"cleanspot/backend/internal/api/handler"
	"cleanspot/backend/internal/complaint"
	"cleanspot/backend/internal/config"
	"cleanspot/backend/internal/feed"
	"cleanspot/backend/internal/imagestore"
	"cleanspot/backend/internal/models"
	"cleanspot/backend/internal/notify"
	"cleanspot/backend/internal/scorer"
	"cleanspot/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.StudentProfile{},
		&models.EmployeeProfile{},
		&models.WorkLogEntry{},
		&models.Complaint{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting CleanSpot Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	images, err := imagestore.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("Failed to init Cloudinary: %v", err)
	}

	gateway := scorer.NewGateway(cfg.ScorerInterpreter, cfg.ScorerScript, cfg.ScorerTimeout)

	svc := complaint.NewService(s, images, gateway, cfg.UploadFolder)
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("WARNING: Telegram notifier disabled: %v", err)
		} else {
			svc.Notifier = tg
		}
	}

	hub := feed.NewHub(s)
	go hub.Run()

	sweeper := &complaint.Sweeper{
		Storage:  s,
		Images:   images,
		Interval: cfg.SweepInterval,
		MaxAge:   cfg.SweepMaxAge,
	}
	go sweeper.Run(context.Background())

	r := gin.Default()
	h := handler.NewHandler(svc, s, images, gateway, hub, cfg.JWTSecret, cfg.TokenTTL)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWS)

	auth := r.Group("/", h.Authenticate())
	auth.GET("/profile", h.Profile)
	auth.POST("/complaint/submitComplaint", h.SubmitComplaint)
	auth.POST("/cloudinary/upload", h.UploadImage)
	auth.POST("/cloudinary/delete", h.DeleteImage)

	student := auth.Group("/", handler.RequireRoles(models.RoleStudent))
	student.GET("/student/dashboard", h.StudentDashboard)

	employee := auth.Group("/", handler.RequireRoles(models.RoleEmployee))
	employee.GET("/complaint/receiveComplaint", h.ReceiveComplaint)
	employee.POST("/complaint/submitWork", h.SubmitWork)
	employee.POST("/roboflow/analyze", h.AnalyzeImage)
	employee.GET("/employee/dashboard", h.EmployeeDashboard)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
