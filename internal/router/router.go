package router

import (
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/handler"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/infra"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/middleware"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	return NewWithClock(cfg, db, rdb, clock.Sistema())
}

// NewWithClock is New with an injectable clock, used by tests that need to
// pin promotion windows.
func NewWithClock(cfg *config.Config, db *gorm.DB, rdb *redis.Client, reloj clock.Clock) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	promocionRepo := repository.NewPromocionRepository(db)
	adminRepo := repository.NewAdministradorRepository(db)
	escaneosCB := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{Nombre: "escaneos"})
	escaneoRepo := repository.NewEscaneoRepositoryConCorte(repository.NewEscaneoRepository(rdb), escaneosCB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(adminRepo, reloj, cfg)
	productoSvc := service.NewProductoService(productoRepo, promocionRepo, escaneoRepo, reloj, cfg)
	promocionSvc := service.NewPromocionService(promocionRepo, productoRepo, cfg)
	metricasSvc := service.NewMetricasService(productoRepo, promocionRepo, escaneoRepo, reloj, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg)
	publicoH := handler.NewCatalogoPublicoHandler(productoSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	promocionesH := handler.NewPromocionesHandler(promocionSvc)
	metricasH := handler.NewMetricasHandler(metricasSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, escaneosCB))

	jwtMW := middleware.JWTAuth(cfg.JWTSecret, cfg.SessionCookieName)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(rdb, cfg.LoginRateLimit), authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", jwtMW, authH.Me)
	}

	// QR lookup and search — no auth required
	public := r.Group("/v1/public", middleware.RateLimiter(rdb, "public", cfg.PublicRateLimit, time.Minute))
	{
		public.GET("/productos", publicoH.Buscar)
		public.GET("/productos/:codigo", publicoH.PorCodigo)
	}

	admin := r.Group("/v1/admin", jwtMW)
	{
		prods := admin.Group("/productos")
		{
			prods.POST("", productosH.Crear)
			prods.GET("", productosH.Listar)
			prods.GET("/exportar", productosH.Exportar)
			prods.GET("/:id", productosH.ObtenerPorID)
			prods.GET("/:id/etiqueta", productosH.Etiqueta)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Eliminar)
			prods.PATCH("/:id/desactivar", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		promos := admin.Group("/promociones")
		{
			promos.POST("", promocionesH.Crear)
			promos.GET("", promocionesH.Listar)
			promos.GET("/:id", promocionesH.ObtenerPorID)
			promos.PUT("/:id", promocionesH.Actualizar)
			promos.DELETE("/:id", promocionesH.Eliminar)
			promos.PATCH("/:id/desactivar", promocionesH.Desactivar)
		}

		admin.GET("/metricas", metricasH.Obtener)
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
