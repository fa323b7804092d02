package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/deskhive/office-booking-backend/internal/auth"
	"github.com/deskhive/office-booking-backend/internal/image"
	imageHttp "github.com/deskhive/office-booking-backend/internal/image/http"
	"github.com/deskhive/office-booking-backend/internal/office"
	officeHttp "github.com/deskhive/office-booking-backend/internal/office/http"
	"github.com/deskhive/office-booking-backend/internal/reservation"
	reservationHttp "github.com/deskhive/office-booking-backend/internal/reservation/http"
	"github.com/deskhive/office-booking-backend/internal/tag"
	tagHttp "github.com/deskhive/office-booking-backend/internal/tag/http"
	"github.com/deskhive/office-booking-backend/internal/user"
	userHttp "github.com/deskhive/office-booking-backend/internal/user/http"
)

// RouterConfig carries environment-dependent router settings.
type RouterConfig struct {
	IsProduction bool
	// AllowedOrigins is the CORS allowlist used in production.
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(
	cfg RouterConfig,
	userService user.Service,
	tagService tag.Service,
	officeService office.Service,
	imageService image.Service,
	reservationService reservation.Service,
	jwtManager *auth.JWTManager,
) *gin.Engine {

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	if cfg.IsProduction {
		config.AllowOrigins = cfg.AllowedOrigins
	} else {
		config.AllowOrigins = []string{
			"http://localhost:8081", // Swagger
			"http://localhost:3000", // Local frontend
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(jwtManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(userService)

	// Token scope middleware, applied after authMiddleware.
	officeScope := auth.RequireScope(auth.ScopeOfficeCreate)
	showScope := auth.RequireScope(auth.ScopeReservationsShow)
	makeScope := auth.RequireScope(auth.ScopeReservationsMake)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(userService, jwtManager)
	tagHandler := tagHttp.NewHandler(tagService)
	officeHandler := officeHttp.NewHandler(officeService)
	imageHandler := imageHttp.NewHandler(imageService)
	reservationHandler := reservationHttp.NewHandler(reservationService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		tagHttp.RegisterRoutes(v1, tagHandler, authMiddleware, sysAdminMiddleware)
		officeHttp.RegisterRoutes(v1, officeHandler, authMiddleware, officeScope)
		imageHttp.RegisterRoutes(v1, imageHandler, authMiddleware)
		reservationHttp.RegisterRoutes(v1, reservationHandler, authMiddleware, showScope, makeScope)
	}

	return r
}
