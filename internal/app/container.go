package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/deskhive/office-booking-backend/internal/api"
	"github.com/deskhive/office-booking-backend/internal/auth"
	"github.com/deskhive/office-booking-backend/internal/image"
	"github.com/deskhive/office-booking-backend/internal/lock"
	"github.com/deskhive/office-booking-backend/internal/notification"
	"github.com/deskhive/office-booking-backend/internal/office"
	"github.com/deskhive/office-booking-backend/internal/pkg/storage"
	"github.com/deskhive/office-booking-backend/internal/reservation"
	"github.com/deskhive/office-booking-backend/internal/tag"
	"github.com/deskhive/office-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	LockBackend string
	LockMaxWait time.Duration
	LockMaxHold time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL     string
	StoragePath string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Booking lock provider
	var lockProvider lock.Provider
	switch cfg.LockBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		lockProvider = lock.NewRedisProvider(client)
	default:
		lockProvider = lock.NewMemoryProvider()
	}

	// Image storage
	imageStore, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to init image storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Tag Module
	tagRepo := tag.NewPgxRepository(cfg.DBPool)
	tagService := tag.NewService(tagRepo)

	// Office Module
	officeRepo := office.NewPgxRepository(cfg.DBPool)
	officeService := office.NewService(officeRepo, tagService)

	// Image Module
	imageRepo := image.NewPgxRepository(cfg.DBPool)
	imageService := image.NewService(imageRepo, officeService, imageStore)

	// Notification Module
	notificationStore := notification.NewPgxStore(cfg.DBPool)
	var publisher *notification.AMQPPublisher
	if cfg.AMQPURL != "" {
		publisher = notification.NewAMQPPublisher(cfg.AMQPURL)
	}
	dispatcher := notification.NewDispatcher(notificationStore, publisher)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(
		reservationRepo,
		officeService,
		lockProvider,
		dispatcher,
		cfg.LockMaxWait,
		cfg.LockMaxHold,
	)

	// Router
	routerCfg := api.RouterConfig{
		IsProduction:   cfg.IsProduction,
		AllowedOrigins: splitOrigins(cfg.ProdOrigins),
	}
	router := api.NewRouter(
		routerCfg,
		userService,
		tagService,
		officeService,
		imageService,
		reservationService,
		jwtManager,
	)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}

// splitOrigins parses a comma-separated origin list into a slice.
func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
