package v1

import (
	"net/http"
	"time"

	"go-portfolio-forms/config"
	"go-portfolio-forms/internal/delivery/http/middleware"
	"go-portfolio-forms/internal/delivery/http/response"
	"go-portfolio-forms/internal/domain"
	"go-portfolio-forms/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	GalleryUC domain.GalleryUsecase
	HealthUC  usecase.HealthUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.Metrics())
	r.Use(middleware.BodyLimit(cfg.MaxRequestBytes))
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", healthHandler(deps.HealthUC))

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	formLimiter := middleware.RateLimitMiddleware(middleware.PerIPRateLimitConfig("rl:form:", cfg.RateLimitFormThreshold, window))
	uploadLimiter := middleware.RateLimitMiddleware(middleware.PerIPRateLimitConfig("rl:upload:", cfg.RateLimitUploadThreshold, window))

	NewContactHandler(v1, deps.ContactUC, formLimiter)
	NewGalleryHandler(v1, deps.GalleryUC, uploadLimiter)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// healthHandler godoc
// @Summary      Health check
// @Description  Reports the reachability of the database and Redis.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func healthHandler(uc usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uc == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status, ok := uc.Check(c.Request.Context())
		if !ok {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	}
}
