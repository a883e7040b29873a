package app

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ellavera-site/internal/background"
	"ellavera-site/internal/config"
	"ellavera-site/internal/editor"
	"ellavera-site/internal/handlers"
	"ellavera-site/internal/middleware"
	"ellavera-site/internal/models"
	"ellavera-site/internal/repository"
	"ellavera-site/internal/sections"
	"ellavera-site/internal/service"
	"ellavera-site/internal/web"
	"ellavera-site/pkg/cache"
	"ellavera-site/pkg/logger"
	"ellavera-site/pkg/telemetry"
	"ellavera-site/pkg/utils"
)

const (
	draftSweepInterval = 5 * time.Minute
	seedRetries        = 5
	seedBackoff        = 10 * time.Second
)

type Options struct {
	// SeedDefaultPages queues a job that creates the default sections of
	// every page that has none.
	SeedDefaultPages bool
	// HTTPClient overrides the client used for backend calls.
	HTTPClient *http.Client
}

type Application struct {
	cfg     *config.Config
	options Options

	cache       *cache.Cache
	drafts      editor.DraftStore
	registry    *sections.Registry
	templates   *template.Template
	scheduler   *background.Scheduler
	rateLimits  *middleware.RateLimitManager
	cancelTasks context.CancelFunc
	tracing     telemetry.ShutdownFunc

	repositories repositoryContainer
	services     serviceContainer
	handlers     handlerContainer

	templateHandler *handlers.TemplateHandler
	router          *gin.Engine
	server          *http.Server
}

type repositoryContainer struct {
	Sections repository.PageSectionRepository
	Products repository.ProductRepository
	Category repository.ResourceRepository[models.Category]
	Article  repository.ResourceRepository[models.Article]
	Client   repository.ResourceRepository[models.Client]
	Review   repository.ResourceRepository[models.Review]
	Service  repository.ResourceRepository[models.Service]
	Gallery  repository.GalleryRepository
	Settings repository.SettingsRepository
	Theme    repository.ThemeRepository
	Lead     repository.LeadRepository
	Upload   repository.UploadRepository
	AI       repository.AIRepository
	Backup   repository.BackupRepository
	Auth     repository.AuthRepository
}

type serviceContainer struct {
	Page    *service.PageService
	Content *service.ContentService
	Site    *service.SiteService
	Lead    *service.LeadService
	Auth    *service.AuthService
	Upload  *service.UploadService
	Backup  *service.BackupService
	AI      *service.AIService
}

type handlerContainer struct {
	Auth     *handlers.AuthHandler
	Site     *handlers.SiteHandler
	Editor   *handlers.EditorHandler
	Lead     *handlers.LeadHandler
	AI       *handlers.AIHandler
	Seed     *handlers.SeedHandler
	Upload   *handlers.UploadHandler
	Backup   *handlers.BackupHandler
	Products *handlers.ProductHandler
	Gallery  *handlers.GalleryHandler
}

func New(cfg *config.Config, opts Options) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	app := &Application{
		cfg:      cfg,
		options:  opts,
		registry: sections.DefaultRegistry(),
	}

	tracing, err := telemetry.Init(context.Background(), telemetry.Options{
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.OTelServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.tracing = tracing

	if err := app.initCache(); err != nil {
		return nil, err
	}

	app.initRepositories()
	app.initServices()

	loadCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	app.services.Site.Load(loadCtx)
	cancel()

	if err := app.initTemplates(); err != nil {
		return nil, err
	}

	if err := app.initHandlers(); err != nil {
		return nil, err
	}

	if err := app.initBackground(); err != nil {
		return nil, err
	}

	app.initRouter()

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	return app, nil
}

func (a *Application) Run() error {
	logger.Info("Server starting", map[string]interface{}{
		"port":        a.cfg.Port,
		"environment": a.cfg.Environment,
		"backend":     a.cfg.APIBaseURL(),
	})

	return a.server.ListenAndServe()
}

func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler: %w", err))
		}
	}

	if a.cancelTasks != nil {
		a.cancelTasks()
	}

	if a.rateLimits != nil {
		if err := a.rateLimits.Shutdown(); err != nil {
			logger.Error(err, "Failed to stop rate limit cleanup", nil)
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			logger.Error(err, "Failed to close cache connection", nil)
		}
	}

	if a.tracing != nil {
		if err := a.tracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracing: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (a *Application) Router() *gin.Engine {
	return a.router
}

// initCache connects redis when enabled. Editor drafts live in redis when it
// is available and in process memory otherwise.
func (a *Application) initCache() error {
	c, err := cache.NewCache(a.cfg.RedisURL, a.cfg.EnableRedis)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	a.cache = c

	if c.Enabled() {
		a.drafts = editor.NewCacheStore(c, a.cfg.DraftTTL)
		logger.Info("Editor drafts stored in redis", nil)
	} else {
		a.drafts = editor.NewMemoryStore(a.cfg.DraftTTL)
	}
	return nil
}

func (a *Application) initRepositories() {
	var client *repository.Client
	if a.options.HTTPClient != nil {
		client = repository.NewClientWithHTTP(a.cfg.APIBaseURL(), a.options.HTTPClient)
	} else {
		client = repository.NewClient(a.cfg.APIBaseURL(), a.cfg.BackendTimeout)
	}

	a.repositories = repositoryContainer{
		Sections: repository.NewPageSectionRepository(client),
		Products: repository.NewProductRepository(client),
		Category: repository.NewCategoryRepository(client),
		Article:  repository.NewArticleRepository(client),
		Client:   repository.NewClientRepository(client),
		Review:   repository.NewReviewRepository(client),
		Service:  repository.NewServiceRepository(client),
		Gallery:  repository.NewGalleryRepository(client),
		Settings: repository.NewSettingsRepository(client),
		Theme:    repository.NewThemeRepository(client),
		Lead:     repository.NewLeadRepository(client),
		Upload:   repository.NewUploadRepository(client),
		AI:       repository.NewAIRepository(client),
		Backup:   repository.NewBackupRepository(client),
		Auth:     repository.NewAuthRepository(client),
	}
}

func (a *Application) initServices() {
	r := a.repositories
	a.services = serviceContainer{
		Page:    service.NewPageService(r.Sections, r.Products, r.Client, r.Review),
		Content: service.NewContentService(r.Category, r.Products, r.Article, r.Client, r.Service, r.Gallery),
		Site:    service.NewSiteService(r.Settings, r.Theme),
		Lead:    service.NewLeadService(r.Lead),
		Auth:    service.NewAuthService(r.Auth),
		Upload:  service.NewUploadService(r.Upload, a.cfg.MaxUploadSize),
		Backup:  service.NewBackupService(r.Backup),
		AI:      service.NewAIService(r.AI),
	}
}

func (a *Application) initTemplates() error {
	templates, err := utils.LoadTemplates(web.Templates(), web.AssetVersion)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	a.templates = templates
	logger.Info("Templates loaded successfully", map[string]interface{}{"count": len(templates.Templates())})
	return nil
}

func (a *Application) initHandlers() error {
	manager := editor.NewManager(a.repositories.Sections, a.drafts)

	a.handlers = handlerContainer{
		Auth:     handlers.NewAuthHandler(a.services.Auth, a.cfg),
		Site:     handlers.NewSiteHandler(a.services.Site),
		Editor:   handlers.NewEditorHandler(manager, a.registry),
		Lead:     handlers.NewLeadHandler(a.services.Lead),
		AI:       handlers.NewAIHandler(a.services.AI),
		Seed:     handlers.NewSeedHandler(a.repositories.Sections),
		Upload:   handlers.NewUploadHandler(a.services.Upload),
		Backup:   handlers.NewBackupHandler(a.services.Backup),
		Products: handlers.NewProductHandler(a.repositories.Products),
		Gallery:  handlers.NewGalleryHandler(a.repositories.Gallery),
	}

	templateHandler, err := handlers.NewTemplateHandler(
		a.services.Page,
		a.services.Content,
		a.services.Site,
		a.services.Lead,
		a.registry,
		a.cfg,
		a.templates,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize template handler: %w", err)
	}

	a.templateHandler = templateHandler
	return nil
}

// initBackground starts the job scheduler and the rate limiter cleanup.
func (a *Application) initBackground() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelTasks = cancel

	a.rateLimits = middleware.NewRateLimitManager(ctx)

	a.scheduler = background.NewScheduler(background.SchedulerConfig{WorkerCount: 2, QueueSize: 16})
	a.scheduler.Start(ctx)

	if sweeper, ok := a.drafts.(background.Sweeper); ok {
		if err := a.scheduler.Every(background.DraftSweepJob(sweeper), draftSweepInterval); err != nil {
			return fmt.Errorf("failed to schedule draft sweep: %w", err)
		}
	}

	if a.options.SeedDefaultPages {
		job := background.SeedPagesJob(a.repositories.Sections, seedRetries, seedBackoff)
		if err := a.scheduler.ScheduleUnique(job); err != nil {
			return fmt.Errorf("failed to schedule page seeding: %w", err)
		}
	}

	return nil
}

func (a *Application) initRouter() {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	if a.cfg.EnableMetrics {
		router.Use(middleware.MetricsMiddleware())
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-CSRF-Token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimitMiddleware(a.cfg, a.rateLimits))
	router.Use(middleware.CSRFMiddleware(a.cfg.AuthCookieName, a.cfg.CSRFCookieName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	if a.cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router.StaticFS("/static", http.FS(web.Static()))
	router.GET("/theme.css", a.handlers.Site.ThemeCSS)

	leadLimit := middleware.LeadRateLimitMiddleware(a.cfg, a.rateLimits)

	th := a.templateHandler
	router.GET("/", th.RenderHome)
	router.GET("/about", th.RenderAbout)
	router.GET("/contact", th.RenderContact)
	router.POST("/contact", leadLimit, th.SubmitContact)
	router.GET("/products", th.RenderProducts)
	router.GET("/products/:id", th.RenderProduct)
	router.GET("/articles", th.RenderArticles)
	router.GET("/articles/:id", th.RenderArticle)
	router.GET("/services", th.RenderServices)
	router.GET("/services/:id", th.RenderService)
	router.GET("/clients", th.RenderClients)
	router.GET("/gallery", th.RenderGallery)

	router.GET("/admin/login", middleware.NoIndexMiddleware(), th.RenderLogin)

	adminPages := router.Group("/admin")
	adminPages.Use(middleware.NoIndexMiddleware())
	adminPages.Use(middleware.AdminPageMiddleware(a.cfg.AuthCookieName, a.services.Auth, "/admin/login"))
	{
		adminPages.GET("", th.RenderAdmin)
	}

	api := router.Group("/api")
	{
		public := api.Group("")
		{
			public.POST("/contact", leadLimit, a.handlers.Lead.Submit)
			public.GET("/settings", a.handlers.Site.GetSettings)
			public.GET("/theme", a.handlers.Site.GetTheme)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", a.handlers.Auth.Login)
			auth.POST("/register", a.handlers.Auth.Register)
			auth.POST("/logout", a.handlers.Auth.Logout)
			auth.GET("/me", middleware.AuthMiddleware(a.cfg.AuthCookieName, a.services.Auth), a.handlers.Auth.Me)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.NoIndexMiddleware())
		admin.Use(middleware.AuthMiddleware(a.cfg.AuthCookieName, a.services.Auth))
		{
			a.handlers.Products.Register(admin.Group("/products"))
			a.handlers.Gallery.Register(admin.Group("/gallery"))
			handlers.NewResourceHandler(a.repositories.Category, "category").Register(admin.Group("/categories"))
			handlers.NewResourceHandler(a.repositories.Article, "article").Register(admin.Group("/articles"))
			handlers.NewResourceHandler(a.repositories.Client, "client").Register(admin.Group("/clients"))
			handlers.NewResourceHandler(a.repositories.Review, "review").Register(admin.Group("/reviews"))
			handlers.NewResourceHandler(a.repositories.Service, "service").Register(admin.Group("/services"))

			admin.GET("/leads", a.handlers.Lead.List)

			admin.GET("/settings", a.handlers.Site.GetSettings)
			admin.PUT("/settings", a.handlers.Site.UpdateSettings)
			admin.GET("/theme", a.handlers.Site.GetTheme)
			admin.PUT("/theme", a.handlers.Site.UpdateTheme)

			uploadLimit := middleware.UploadRateLimitMiddleware(a.cfg, a.rateLimits)
			admin.POST("/upload-image", uploadLimit, a.handlers.Upload.UploadImage)
			admin.POST("/upload-file", uploadLimit, a.handlers.Upload.UploadFile)

			admin.POST("/ai/generate-content", a.handlers.AI.GenerateContent)
			admin.POST("/ai/generate-image", a.handlers.AI.GenerateImage)

			backupLimit := middleware.BackupRateLimitMiddleware(a.cfg, a.rateLimits)
			admin.GET("/backup/stats", a.handlers.Backup.Stats)
			admin.GET("/backup", backupLimit, a.handlers.Backup.Export)

			admin.POST("/seed", a.handlers.Seed.SeedAll)
			admin.POST("/seed/:page", a.handlers.Seed.SeedPage)

			a.handlers.Editor.Register(admin)
		}
	}

	router.NoRoute(th.NotFound)

	a.router = router
}
