package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	availabilityHttp "github.com/nekogravitycat/hotel-booking-backend/internal/availability/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/file"
	fileHttp "github.com/nekogravitycat/hotel-booking-backend/internal/file/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/guest"
	guestHttp "github.com/nekogravitycat/hotel-booking-backend/internal/guest/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricerule"
	priceRuleHttp "github.com/nekogravitycat/hotel-booking-backend/internal/pricerule/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pricing"
	pricingHttp "github.com/nekogravitycat/hotel-booking-backend/internal/pricing/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/quote"
	quoteHttp "github.com/nekogravitycat/hotel-booking-backend/internal/quote/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/hotel-booking-backend/internal/reservation/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/hotel-booking-backend/internal/room/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/roomtype"
	roomTypeHttp "github.com/nekogravitycat/hotel-booking-backend/internal/roomtype/http"
	"github.com/nekogravitycat/hotel-booking-backend/internal/user"
	userHttp "github.com/nekogravitycat/hotel-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	RequestTimeout time.Duration
	MaxUploadBytes int64

	UserService         user.Service
	FileService         file.Service
	GuestService        guest.Service
	RoomTypeService     roomtype.Service
	RoomService         room.Service
	PriceRuleService    pricerule.Service
	PricingService      pricing.Service
	AvailabilityService availability.Service
	QuoteService        quote.Service
	ReservationService  reservation.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery(), RequestTimeout(cfg.RequestTimeout))

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Front desk app
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the token carries the admin role.
	adminMiddleware := auth.RequireRole(string(user.RoleAdmin))

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	fileHandler := fileHttp.NewHandler(cfg.FileService)
	roomTypeHandler := roomTypeHttp.NewHandler(cfg.RoomTypeService, fileHandler, cfg.MaxUploadBytes)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	guestHandler := guestHttp.NewHandler(cfg.GuestService)
	priceRuleHandler := priceRuleHttp.NewHandler(cfg.PriceRuleService)
	pricingHandler := pricingHttp.NewHandler(cfg.PricingService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	quoteHandler := quoteHttp.NewHandler(cfg.QuoteService)
	reservationHandler := reservationHttp.NewHandler(cfg.ReservationService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler)
		roomTypeHttp.RegisterRoutes(v1, roomTypeHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		guestHttp.RegisterRoutes(v1, guestHandler, authMiddleware, adminMiddleware)
		priceRuleHttp.RegisterRoutes(v1, priceRuleHandler, authMiddleware, adminMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		quoteHttp.RegisterRoutes(v1, quoteHandler)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware)
	}

	return r
}

// splitOrigins parses the comma separated PROD_ORIGINS value.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
