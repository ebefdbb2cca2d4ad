package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/accountd/accountd/internal/accounts"
	"github.com/accountd/accountd/internal/accounts/users"
	"github.com/accountd/accountd/internal/auth"
	"github.com/accountd/accountd/internal/config"
)

// AppState holds all application services
type AppState struct {
	Logger      *zap.Logger
	Config      *config.Config
	DB          *bun.DB
	UserService users.UserManager
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()

	// Initialize application state
	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	// Create the schema before serving traffic
	ctx := context.Background()
	if err := accounts.Initialize(ctx, as.DB); err != nil {
		logger.Fatal("Failed to initialize accounts schema", zap.Error(err))
	}

	// Create HTTP server
	router := setupRouter(as)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	logger.Info("Starting accountd server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) (*AppState, error) {
	pgConfig := config.Postgres()

	logger.Info("Database configuration",
		zap.String("host", pgConfig.Host),
		zap.Int("port", pgConfig.Port),
		zap.String("database", pgConfig.Database),
		zap.String("user", pgConfig.User))

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(pgConfig.DSN()),
		pgdriver.WithConnParams(map[string]interface{}{"search_path": pgConfig.SchemaName}),
		pgdriver.WithReadTimeout(time.Duration(pgConfig.ReadTimeout)*time.Second),
		pgdriver.WithWriteTimeout(time.Duration(pgConfig.WriteTimeout)*time.Second),
	))
	sqldb.SetMaxOpenConns(pgConfig.MaxOpenConnections)

	db := bun.NewDB(sqldb, pgdialect.New())

	hasher := auth.NewBcryptHasher(config.Accounts().BcryptCost)

	services := accounts.NewServices(db, hasher)

	return &AppState{
		Logger:      logger,
		Config:      config.Get(),
		DB:          db,
		UserService: services.Users,
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

// ClusterAuthMiddleware requires the cluster API key for user management routes
func ClusterAuthMiddleware(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// Health endpoint is open
		if strings.HasPrefix(path, "/health") {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !isValidClusterAuth(authHeader) {
			as.Logger.Warn("Unauthorized access to cluster endpoint",
				zap.String("path", path),
				zap.String("method", c.Request.Method),
				zap.String("remote_addr", c.Request.RemoteAddr))

			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Cluster authentication required for user management",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// isValidClusterAuth validates cluster authentication using config
func isValidClusterAuth(authHeader string) bool {
	expectedKey := config.Auth().ClusterAPIKey
	if expectedKey == "" {
		return false // No key configured
	}

	if authHeader == "" {
		return false
	}

	// Accept either Bearer or Api-Key format
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		return token == expectedKey
	}

	if strings.HasPrefix(authHeader, "Api-Key ") {
		token := strings.TrimPrefix(authHeader, "Api-Key ")
		return token == expectedKey
	}

	return false
}

func setupRouter(as *AppState) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(cors.Default())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Cap request bodies at the configured maximum
	maxBody := config.Http().MaxRequestSize
	router.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
		c.Next()
	})

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := as.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services": gin.H{
				"database": "healthy",
			},
		})
	})

	router.Use(ClusterAuthMiddleware(as))

	cluster := router.Group("/cluster/v1")
	{
		userRoutes := cluster.Group("/users")
		{
			userRoutes.GET("/", listUsers(as))
			userRoutes.POST("/", createUser(as))
			userRoutes.PUT("/:userId", updateUser(as))
			userRoutes.DELETE("/:userId", deleteUser(as))
		}
	}

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		if err := as.DB.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}

// statusForError maps a classified user error to an HTTP status
func statusForError(err error) int {
	switch {
	case users.IsValidationError(err):
		return http.StatusBadRequest
	case users.IsConflict(err):
		return http.StatusConflict
	case users.IsNotFound(err), users.IsNoUsersFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// User handlers

func listUsers(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := as.UserService.ListUsers(c.Request.Context())
		if err != nil {
			if users.IsNoUsersFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			as.Logger.Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"users": list})
	}
}

func createUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		user, err := as.UserService.CreateUser(c.Request.Context(), &req)
		if err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				as.Logger.Error("Failed to create user", zap.String("username", req.Username), zap.Error(err))
				c.JSON(status, gin.H{"error": "Failed to create user"})
				return
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": fmt.Sprintf("user %q created", user.Username),
			"user":    user,
		})
	}
}

func updateUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		var req users.UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		req.UserID = userID

		user, err := as.UserService.UpdateUser(c.Request.Context(), &req)
		if err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				as.Logger.Error("Failed to update user", zap.String("user_id", userID), zap.Error(err))
				c.JSON(status, gin.H{"error": "Failed to update user"})
				return
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("user %q updated", user.Username),
			"user":    user,
		})
	}
}

func deleteUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		req := &users.DeleteUserRequest{UserID: userID}

		if err := as.UserService.DeleteUser(c.Request.Context(), req); err != nil {
			status := statusForError(err)
			if status == http.StatusInternalServerError {
				as.Logger.Error("Failed to delete user", zap.String("user_id", userID), zap.Error(err))
				c.JSON(status, gin.H{"error": "Failed to delete user"})
				return
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("user %s deleted", userID),
		})
	}
}
