// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-course-catalog/internal/cache"
	"github.com/tbourn/go-course-catalog/internal/config"
	"github.com/tbourn/go-course-catalog/internal/domain"
	"github.com/tbourn/go-course-catalog/internal/events"
	"github.com/tbourn/go-course-catalog/internal/http/handlers"
	"github.com/tbourn/go-course-catalog/internal/http/middleware"
	"github.com/tbourn/go-course-catalog/internal/repo"
	"github.com/tbourn/go-course-catalog/internal/services"
)

// categoryRepoShim adapts the repository free functions to the
// services.CategoryRepo interface expected by the CategoryService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type categoryRepoShim struct{}

// CreateCategory proxies repo.CreateCategory.
func (categoryRepoShim) CreateCategory(ctx context.Context, db *gorm.DB, name string) (*domain.Category, error) {
	return repo.CreateCategory(ctx, db, name)
}

// GetCategory proxies repo.GetCategory.
func (categoryRepoShim) GetCategory(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	return repo.GetCategory(ctx, db, id)
}

// ListCategories proxies repo.ListCategories.
func (categoryRepoShim) ListCategories(ctx context.Context, db *gorm.DB) ([]domain.Category, error) {
	return repo.ListCategories(ctx, db)
}

// CountCategories proxies repo.CountCategories (pagination support).
func (categoryRepoShim) CountCategories(ctx context.Context, db *gorm.DB, filter string) (int64, error) {
	return repo.CountCategories(ctx, db, filter)
}

// ListCategoriesPage proxies repo.ListCategoriesPage (pagination support).
func (categoryRepoShim) ListCategoriesPage(ctx context.Context, db *gorm.DB, filter string, offset, limit int) ([]domain.Category, error) {
	return repo.ListCategoriesPage(ctx, db, filter, offset, limit)
}

// UpdateCategory proxies repo.UpdateCategory.
func (categoryRepoShim) UpdateCategory(ctx context.Context, db *gorm.DB, c *domain.Category) (*domain.Category, error) {
	return repo.UpdateCategory(ctx, db, c)
}

// DeleteCategory proxies repo.DeleteCategory.
func (categoryRepoShim) DeleteCategory(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteCategory(ctx, db, id)
}

// courseRepoShim adapts the repository free functions to the
// services.CourseRepo interface expected by the CourseService.
type courseRepoShim struct{}

// CreateCourse proxies repo.CreateCourse.
func (courseRepoShim) CreateCourse(ctx context.Context, db *gorm.DB, name string, category domain.Category) (*domain.Course, error) {
	return repo.CreateCourse(ctx, db, name, category)
}

// GetCourse proxies repo.GetCourse.
func (courseRepoShim) GetCourse(ctx context.Context, db *gorm.DB, id int64) (*domain.Course, error) {
	return repo.GetCourse(ctx, db, id)
}

// ListCourses proxies repo.ListCourses.
func (courseRepoShim) ListCourses(ctx context.Context, db *gorm.DB) ([]domain.Course, error) {
	return repo.ListCourses(ctx, db)
}

// CountCourses proxies repo.CountCourses (pagination support).
func (courseRepoShim) CountCourses(ctx context.Context, db *gorm.DB, filter string) (int64, error) {
	return repo.CountCourses(ctx, db, filter)
}

// ListCoursesPage proxies repo.ListCoursesPage (pagination support).
func (courseRepoShim) ListCoursesPage(ctx context.Context, db *gorm.DB, filter string, offset, limit int) ([]domain.Course, error) {
	return repo.ListCoursesPage(ctx, db, filter, offset, limit)
}

// ListCoursesByCategory proxies repo.ListCoursesByCategory (cache invalidation).
func (courseRepoShim) ListCoursesByCategory(ctx context.Context, db *gorm.DB, categoryID int64) ([]domain.Course, error) {
	return repo.ListCoursesByCategory(ctx, db, categoryID)
}

// UpdateCourse proxies repo.UpdateCourse.
func (courseRepoShim) UpdateCourse(ctx context.Context, db *gorm.DB, c *domain.Course) (*domain.Course, error) {
	return repo.UpdateCourse(ctx, db, c)
}

// DeleteCourse proxies repo.DeleteCourse.
func (courseRepoShim) DeleteCourse(ctx context.Context, db *gorm.DB, id int64) error {
	return repo.DeleteCourse(ctx, db, id)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, health and metrics endpoints, and then mounts the
// public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per client IP)
//  8. CORS and Security headers
//  9. Response compression
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Transparent gzip for JSON payloads
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/caches/notifier
	notifier := events.NewNotifier()
	catSvc := services.NewCategoryService(db, categoryRepoShim{}, cache.NewStore[domain.Category](), notifier)
	courseSvc := services.NewCourseService(db, courseRepoShim{}, cache.NewStore[domain.Course](), catSvc)
	courseSvc.SubscribeCategoryEvents(notifier)

	h := handlers.New(catSvc, courseSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api"
	api := groupWithPrefix(r, apiBase)
	{
		// Categories
		category := api.Group("/category")
		category.GET("", h.ListCategories)
		category.GET("/pageable", h.ListCategoriesPage)
		category.GET("/:id", h.GetCategory)
		category.POST("", h.CreateCategory)
		category.PUT("/:id", h.UpdateCategory)
		category.DELETE("/:id", h.DeleteCategory)

		// Courses
		course := api.Group("/course")
		course.GET("", h.ListCourses)
		course.GET("/pageable", h.ListCoursesPage)
		course.GET("/:id", h.GetCourse)
		course.POST("", h.CreateCourse)
		course.PUT("/:id", h.UpdateCourse)
		course.DELETE("/:id", h.DeleteCourse)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
