package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/collabroomhq/collabroom-backend/internal/cache"
	"github.com/collabroomhq/collabroom-backend/internal/handlers"
	"github.com/collabroomhq/collabroom-backend/internal/middleware"
	"github.com/collabroomhq/collabroom-backend/internal/repository"
	"github.com/collabroomhq/collabroom-backend/internal/service"
	"github.com/collabroomhq/collabroom-backend/internal/storage"
	"github.com/collabroomhq/collabroom-backend/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	accessTTL := 15 * time.Minute
	if ttlStr := os.Getenv("ACCESS_TOKEN_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil && minutes > 0 {
			accessTTL = time.Duration(minutes) * time.Minute
		}
	}
	verifier := token.NewVerifier(jwtSecret, accessTTL)

	app := fiber.New(fiber.Config{
		AppName:   "CollabRoom Backend",
		BodyLimit: 4 * 1024 * 1024, // 4MB
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-CR-CSRF",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	presenceCache := cache.NewPresenceCache(redisCache)
	messageCache := cache.NewMessageCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, verifier)
	membershipService := service.NewMembershipService(roomRepo, channelRepo)
	roomService := service.NewRoomService(roomRepo, userRepo)
	channelService := service.NewChannelService(channelRepo, roomRepo)
	messageService := service.NewMessageService(messageRepo, channelRepo)

	// Initialize attachment storage (best-effort; media endpoints return 503 if missing)
	var attachmentStore *storage.AttachmentStore
	if cfg, err := storage.LoadS3ConfigFromEnv(); err != nil {
		log.Printf("WARNING: attachment storage not configured: %v", err)
	} else if st, err := storage.NewAttachmentStore(cfg); err != nil {
		log.Printf("WARNING: failed to initialize attachment storage: %v", err)
	} else {
		attachmentStore = st
		log.Printf("Attachment storage initialized successfully (bucket=%s)", cfg.Bucket)
	}

	// Initialize handlers
	wsHandler := handlers.NewWebSocketHandler(membershipService, userRepo, presenceCache)
	authHandler := handlers.NewAuthHandler(authService, accessTTL)
	roomHandler := handlers.NewRoomHandler(roomService, presenceCache)
	channelHandler := handlers.NewChannelHandler(channelService)
	messageHandler := handlers.NewMessageHandler(messageService, membershipService, messageCache, wsHandler.GetHub())
	mediaHandler := handlers.NewMediaHandler(attachmentStore)

	// Public routes
	api := app.Group("/api", middleware.OriginAllowed())
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Get("/csrf", authHandler.CSRF)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh) // No CSRF required - protected by HttpOnly refresh token
	auth.Post("/logout", middleware.CSRFRequired(), authHandler.Logout)

	// Protected routes
	protected := api.Group("/", middleware.AuthRequired(verifier), middleware.CSRFRequired())
	protected.Post("/rooms", roomHandler.CreateRoom)
	protected.Get("/rooms", roomHandler.GetMyRooms)
	protected.Get("/rooms/:id/members", roomHandler.GetMembers)
	protected.Post("/rooms/:id/members", roomHandler.AddMember)
	protected.Get("/rooms/:id/channels", channelHandler.ListChannels)
	protected.Post("/rooms/:id/channels", channelHandler.CreateChannel)
	protected.Post("/channels/:id/join", channelHandler.JoinChannel)
	protected.Post("/channels/:id/leave", channelHandler.LeaveChannel)
	protected.Get("/channels/:id/messages", messageHandler.GetChannelMessages)
	protected.Post("/messages", messageHandler.SendMessage)
	protected.Get("/media/attachments/*", mediaHandler.GetAttachment)

	// WebSocket route: the handshake must present the same access credential
	// as the REST layer; rejected handshakes never complete the upgrade.
	app.Use(
		"/ws",
		middleware.OriginAllowed(),
		middleware.AuthRequired(verifier),
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "CollabRoom backend is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
