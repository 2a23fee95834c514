package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/checkout"
	orderControllers "github.com/junaidrashid-git/charm-studio-api/controllers/order"
	"github.com/junaidrashid-git/charm-studio-api/middleware"
	"github.com/junaidrashid-git/charm-studio-api/session"
)

// Server holds everything the handlers are built from.
type Server struct {
	DB          *gorm.DB
	Logger      *zap.Logger
	JWTSecret   []byte
	AdminAPIKey string
	Assets      *catalog.AssetHost
	Catalog     *catalog.Provider
	Workspace   *session.Workspace
	Orders      *checkout.GormStore
	Checkout    *checkout.Service
	Hub         *orderControllers.Hub
	Metrics     prometheus.Gatherer
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, s *Server) {
	r.GET("/healthz", healthz(s.DB))
	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Metrics, promhttp.HandlerOpts{})))
	}

	// Public auth and catalog routes (no middleware)
	SetupAuthRoutes(r, s)
	SetupCatalogRoutes(r, s)

	// Design, cart and order routes (JWT-protected)
	SetupDesignRoutes(r, s)
	SetupCartRoutes(r, s)
	SetupOrderRoutes(r, s)

	// Admin routes (API-Key-protected)
	SetupAdminRoutes(r, s)
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// NewRouter builds the engine with logging, recovery and CORS, then
// registers every route.
func NewRouter(s *Server, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(s.Logger), middleware.Recovery(s.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		// credentials with a wildcard need the origin echoed back
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	SetupRoutes(r, s)
	return r
}
