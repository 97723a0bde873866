package main

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	appmodules "gatherly/app"
	"gatherly/app/jobs"
	coremodules "gatherly/core/app"
	"gatherly/core/config"
	"gatherly/core/database"
	"gatherly/core/email"
	"gatherly/core/emitter"
	"gatherly/core/logger"
	"gatherly/core/module"
	"gatherly/core/router"
	"gatherly/core/router/middleware"
	"gatherly/core/scheduler"
	"gatherly/core/storage"
	"gatherly/core/websocket"

	"github.com/joho/godotenv"
)

// @title Gatherly API
// @description Meeting and social collaboration API: meetings, posts, comments, follows, notifications and search
// @contact.name Gatherly Team
// @contact.email info@gatherly.local
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @version 1.0.0
// @BasePath /api
// @schemes http https
// @accept json
// @produce json
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your token with the prefix "Bearer "

// App represents the Gatherly application with simplified initialization
type App struct {
	config      *config.Config
	db          *database.Database
	router      *router.Router
	logger      logger.Logger
	emitter     *emitter.Emitter
	storage     *storage.ActiveStorage
	emailSender email.Sender
	wsHub       *websocket.Hub
	scheduler   *scheduler.CronScheduler

	verbose bool
}

// New creates a new application instance
func New() *App {
	verbose := false
	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
			break
		}
	}
	return &App{verbose: verbose}
}

// Start initializes and starts the application
func (app *App) Start() error {
	return app.
		loadEnvironment().
		initConfig().
		initLogger().
		initDatabase().
		initInfrastructure().
		initRouter().
		registerModules().
		startScheduler().
		setupRoutes().
		displayServerInfo().
		run()
}

// loadEnvironment loads environment variables
func (app *App) loadEnvironment() *App {
	// Missing .env is fine, the environment may already be set.
	_ = godotenv.Load()
	return app
}

// initConfig initializes configuration
func (app *App) initConfig() *App {
	app.config = config.NewConfig()
	return app
}

// initLogger initializes the logger
func (app *App) initLogger() *App {
	logConfig := logger.Config{
		Environment: app.config.Env,
		LogPath:     "logs",
		Level:       "debug",
	}

	log, err := logger.NewLogger(logConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	app.logger = log
	return app
}

// initDatabase initializes the database connection
func (app *App) initDatabase() *App {
	db, err := database.InitDB(app.config)
	if err != nil {
		app.logger.Error("Failed to initialize database", logger.String("error", err.Error()))
		panic(fmt.Sprintf("Database initialization failed: %v", err))
	}

	app.db = db

	if app.verbose {
		app.logger.Info("Database connected", logger.String("driver", app.config.DBDriver))
	}

	return app
}

// initInfrastructure initializes core infrastructure components
func (app *App) initInfrastructure() *App {
	app.emitter = emitter.New()

	storageConfig := storage.Config{
		Provider:  app.config.StorageProvider,
		Path:      app.config.StoragePath,
		BaseURL:   app.config.StorageBaseURL,
		APIKey:    app.config.StorageAPIKey,
		APISecret: app.config.StorageAPISecret,
		Endpoint:  app.config.StorageEndpoint,
		Bucket:    app.config.StorageBucket,
		Region:    app.config.StorageRegion,
	}

	activeStorage, err := storage.NewActiveStorage(app.db.DB, storageConfig)
	if err != nil {
		app.logger.Error("Failed to initialize storage", logger.String("error", err.Error()))
		panic(fmt.Sprintf("Storage initialization failed: %v", err))
	}
	app.storage = activeStorage

	if app.verbose {
		app.logger.Info("Storage initialized", logger.String("provider", app.config.StorageProvider))
	}

	emailSender, err := email.NewSender(app.config)
	if err != nil {
		app.logger.Warn("Email sender unavailable, falling back to no-op",
			logger.String("error", err.Error()))
		emailSender = email.NewNoopSender()
	}
	app.emailSender = emailSender

	return app
}

// initRouter initializes the router with middleware
func (app *App) initRouter() *App {
	app.router = router.New()
	app.setupMiddleware()
	app.setupStaticRoutes()
	app.initWebSocket()

	if app.verbose {
		app.logger.Info("Router and middleware initialized")
	}

	return app
}

// setupMiddleware configures the global middleware chain
func (app *App) setupMiddleware() {
	app.router.Use(middleware.Recovery(app.logger))

	// Request logging
	app.router.Use(func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			start := time.Now()
			err := next(c)

			app.logger.Info("Request",
				logger.String("method", c.Request.Method),
				logger.String("path", c.Request.URL.Path),
				logger.Int("status", c.Writer.Status()),
				logger.Duration("duration", time.Since(start)),
				logger.String("ip", c.ClientIP()),
			)
			return err
		}
	})

	if app.config.CORSEnabled {
		app.router.Use(middleware.CORSMiddleware(app.config.CORSOrigins))
	}

	// Bind the acting user when a valid token is present; handlers decide
	// whether an anonymous request is acceptable.
	app.router.Use(middleware.OptionalAuthMiddleware(app.config.JWTSecret))
}

// setupStaticRoutes configures static file serving
func (app *App) setupStaticRoutes() {
	app.router.Static("/static", "./static")
	app.router.Static("/storage", "./storage")
	app.router.Static("/swagger", "./swagger")
}

// initWebSocket initializes the WebSocket hub if enabled
func (app *App) initWebSocket() {
	if !app.config.WebSocketEnabled {
		return
	}

	app.wsHub = websocket.InitWebSocketModule(app.router.Group("/api"))

	if app.verbose {
		app.logger.Info("WebSocket initialized")
	}
}

// registerModules initializes core and app modules via their orchestrators
func (app *App) registerModules() *App {
	deps := module.Dependencies{
		DB:          app.db.DB,
		Router:      app.router.Group("/api"),
		Logger:      app.logger,
		Emitter:     app.emitter,
		Storage:     app.storage,
		EmailSender: app.emailSender,
		WSHub:       app.wsHub,
		Config:      app.config,
	}

	initializer := module.NewInitializer(app.logger)

	coreOrchestrator := module.NewCoreOrchestrator(initializer, coremodules.NewCoreModules())
	coreInitialized, err := coreOrchestrator.InitializeCoreModules(deps)
	if err != nil {
		app.logger.Error("Failed to initialize core modules", logger.String("error", err.Error()))
	}

	appOrchestrator := module.NewAppOrchestrator(initializer, appmodules.NewAppModules())
	appInitialized, err := appOrchestrator.InitializeAppModules(deps)
	if err != nil {
		app.logger.Error("Failed to initialize app modules", logger.String("error", err.Error()))
	}

	if app.verbose {
		app.logger.Info("Modules registered",
			logger.Int("core", len(coreInitialized)),
			logger.Int("app", len(appInitialized)))
	}

	return app
}

// startScheduler registers and starts the cron jobs
func (app *App) startScheduler() *App {
	app.scheduler = jobs.SetupScheduler(app.db.DB, app.emailSender, app.logger)
	app.scheduler.Start()

	if app.verbose {
		app.logger.Info("Scheduler started")
	}

	return app
}

// setupRoutes sets up basic system routes
func (app *App) setupRoutes() *App {
	app.router.GET("/health", func(c *router.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"version": app.config.Version,
		})
	})

	app.router.GET("/swagger", func(c *router.Context) error {
		return c.Redirect(302, "/swagger/index.html")
	})

	app.router.GET("/", func(c *router.Context) error {
		return c.JSON(200, map[string]any{
			"message": "pong",
			"version": app.config.Version,
		})
	})

	return app
}

// displayServerInfo shows server startup information
func (app *App) displayServerInfo() *App {
	localIP := app.getLocalIP()
	port := app.config.ServerPort

	fmt.Printf("\n\033[1;32m%s Ready!\033[0m\n\n", app.config.AppName)
	fmt.Printf("\033[36mServer URLs:\033[0m\n")
	fmt.Printf("  Local:   http://localhost%s\n", port)
	fmt.Printf("  Network: http://%s%s\n\n", localIP, port)
	fmt.Printf("\033[36mAPI Documentation:\033[0m\n")
	fmt.Printf("  Swagger: http://localhost%s/swagger/\n\n", port)

	return app
}

// getLocalIP gets the local network IP address
func (app *App) getLocalIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "localhost"
	}

	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	return "localhost"
}

// run starts the HTTP server
func (app *App) run() error {
	port := app.config.ServerPort

	if app.verbose {
		app.logger.Info("Server starting", logger.String("port", port))
	}

	if err := app.router.Run(port); err != nil {
		if strings.Contains(err.Error(), "bind: address already in use") {
			app.logger.Error("Server failed to start - Port already in use",
				logger.String("port", port),
				logger.String("error", err.Error()))
			return fmt.Errorf("port %s is already in use, stop the other server or change SERVER_PORT", port)
		}
		app.logger.Error("Server failed to start",
			logger.String("error", err.Error()))
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

func main() {
	app := New()
	if err := app.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
