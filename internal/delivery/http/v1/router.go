package v1

import (
	"net/http"
	"time"

	"job-catalog-api/config"
	"job-catalog-api/internal/delivery/http/middleware"
	"job-catalog-api/internal/delivery/http/response"
	"job-catalog-api/internal/domain"
	"job-catalog-api/internal/usecase"
	"job-catalog-api/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	JobUC    domain.JobUsecase
	HealthUC usecase.HealthUsecase
	Redis    *goredis.Client // optional
	Config   *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}

	r := gin.New()

	rateLimit := middleware.DefaultRateLimitConfig()
	rateLimit.Redis = deps.Redis
	if deps.Config != nil {
		if deps.Config.RateLimitThreshold > 0 {
			rateLimit.Limit = deps.Config.RateLimitThreshold
		}
		if deps.Config.RateLimitWindowSeconds > 0 {
			rateLimit.Window = time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
		}
	}

	var origins []string
	if deps.Config != nil {
		origins = deps.Config.CORSAllowedOrigins
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(origins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	// Liveness body is bare, not enveloped.
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.HealthUC.Check(c))
	})
	v1.GET("/ready", func(c *gin.Context) {
		if err := deps.HealthUC.Ready(c); err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Ready", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := v1.Group("")
	api.Use(middleware.RateLimitMiddleware(rateLimit))
	NewJobHandler(api, deps.JobUC)

	return r
}
