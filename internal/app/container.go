package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hotel-booking-backend/internal/api"
	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/file"
	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/storage"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	"github.com/nekogravitycat/hotel-booking-backend/internal/quote"
	"github.com/nekogravitycat/hotel-booking-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction       bool
	ProdOrigins        string
	DBPool             *pgxpool.Pool
	JWTSecret          string
	JWTTTL             time.Duration
	BcryptCost         int
	StorageDir         string
	MaxUploadBytes     int64
	RequestTimeout     time.Duration
	PricingConcurrency int
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

	store, err := storage.NewLocalStorage(cfg.StorageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// File Module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, store)

	// RoomType Module
	rtRepo := roomtype.NewPgxRepository(cfg.DBPool)
	rtService := roomtype.NewService(rtRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo)

	// Guest Module
	guestRepo := guest.NewPgxRepository(cfg.DBPool)
	guestService := guest.NewService(guestRepo)

	// PriceRule Module
	ruleRepo := pricerule.NewPgxRepository(cfg.DBPool)
	ruleService := pricerule.NewService(ruleRepo, rtService)

	// Pricing Engine
	pricingService := pricing.NewService(rtService, ruleRepo)

	// Availability Resolver
	occupancyRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(rtService, roomService, occupancyRepo)

	// Quote Assembly
	quoteService := quote.NewService(availService, pricingService, cfg.PricingConcurrency)

	// Reservation Module
	reservationRepo := reservation.NewPgxRepository(cfg.DBPool)
	reservationService := reservation.NewService(reservationRepo, guestService, roomService, rtService, pricingService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		RequestTimeout:      cfg.RequestTimeout,
		MaxUploadBytes:      cfg.MaxUploadBytes,
		UserService:         userService,
		FileService:         fileService,
		GuestService:        guestService,
		RoomTypeService:     rtService,
		RoomService:         roomService,
		PriceRuleService:    ruleService,
		PricingService:      pricingService,
		AvailabilityService: availService,
		QuoteService:        quoteService,
		ReservationService:  reservationService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
