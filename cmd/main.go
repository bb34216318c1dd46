package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sjbrooks/Warbler/docs"

	"github.com/sjbrooks/Warbler/internal/handlers"
	"github.com/sjbrooks/Warbler/internal/hasher"
	"github.com/sjbrooks/Warbler/internal/jwt"
	"github.com/sjbrooks/Warbler/internal/logger"
	"github.com/sjbrooks/Warbler/internal/middlewares"
	"github.com/sjbrooks/Warbler/internal/migrations"
	"github.com/sjbrooks/Warbler/internal/monitoring"
	"github.com/sjbrooks/Warbler/internal/repositories"
	"github.com/sjbrooks/Warbler/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title Warbler API
// @version 1.0.0
// @description Micro-blogging service: accounts, follows, messages, likes and home feed
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, grpcPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp, bcryptCost,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, grpcPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaBrokers, kafkaTopic,
		jwtSecret, jwtExp, bcryptCost,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, database, Redis, Kafka, JWT and hashing configuration.
func parseConfig(path string) (
	appHost, appPort, grpcPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	kafkaBrokers []string, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	bcryptCost int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	grpcPort = getEnv("GRPC_PORT", "50051")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "warbler")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Kafka config, events are disabled when no brokers are set
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			kafkaBrokers = append(kafkaBrokers, broker)
		}
	}
	kafkaTopic = getEnv("KAFKA_TOPIC", "warbler-events")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "86400")); err != nil {
		return
	}

	// Password hashing
	if bcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", "10")); err != nil {
		return
	}

	return
}

// app groups the services and session helpers the router depends on.
type app struct {
	accounts *services.AccountService
	graph    *services.SocialGraphService
	messages *services.MessageService
	likes    *services.LikeService
	feed     *services.FeedService
	tokens   *jwt.JWT
	sessions *repositories.SessionRevocationRepository
}

// newApp builds repositories and services on top of the given connections.
// A nil events writer disables activity events.
func newApp(db *sqlx.DB, rdb *redis.Client, events services.EventWriter, tokens *jwt.JWT, pwHasher *hasher.Bcrypt) app {
	txGetter := repositories.TxGetter(middlewares.GetTxFromContext)

	accountReadRepo := repositories.NewAccountReadRepository(db, txGetter)
	accountWriteRepo := repositories.NewAccountWriteRepository(db, txGetter)
	followReadRepo := repositories.NewFollowReadRepository(db, txGetter)
	followWriteRepo := repositories.NewFollowWriteRepository(db, txGetter)
	messageReadRepo := repositories.NewMessageReadRepository(db, txGetter)
	messageWriteRepo := repositories.NewMessageWriteRepository(db, txGetter)
	likeReadRepo := repositories.NewLikeReadRepository(db, txGetter)
	likeWriteRepo := repositories.NewLikeWriteRepository(db, txGetter)

	return app{
		accounts: services.NewAccountService(accountReadRepo, accountWriteRepo, pwHasher, events),
		graph:    services.NewSocialGraphService(followWriteRepo, followReadRepo, events),
		messages: services.NewMessageService(messageWriteRepo, messageReadRepo, events),
		likes:    services.NewLikeService(likeWriteRepo, likeReadRepo, events),
		feed:     services.NewFeedService(followReadRepo, messageReadRepo),
		tokens:   tokens,
		sessions: repositories.NewSessionRevocationRepository(rdb),
	}
}

// newRouter mounts every HTTP route. Mutating routes run inside a
// database transaction.
func newRouter(db *sqlx.DB, a app, swaggerURL string) http.Handler {
	tx := middlewares.TxMiddleware(db)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(monitoring.InstrumentHandler)
	r.Use(middlewares.SessionMiddleware(a.tokens, a.sessions))

	// Public routes
	r.Get("/", handlers.NewHomeFeedHandler(a.feed, a.likes))
	r.Post("/login", handlers.NewLoginHandler(a.accounts, a.tokens))
	r.Get("/users", handlers.NewListUsersHandler(a.accounts))
	r.Get("/users/{id}", handlers.NewShowUserHandler(a.accounts, a.messages, a.likes))
	r.Get("/users/{id}/likes", handlers.NewUserLikesHandler(a.accounts, a.likes))
	r.Get("/messages/{id}", handlers.NewShowMessageHandler(a.messages, a.likes))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	r.With(tx).Post("/signup", handlers.NewSignupHandler(a.accounts, a.tokens))

	// Routes that need a session
	r.Group(func(r chi.Router) {
		r.Use(middlewares.RequireAccount)

		r.Post("/logout", handlers.NewLogoutHandler(a.sessions))
		r.Get("/users/{id}/following", handlers.NewFollowingHandler(a.accounts, a.graph))
		r.Get("/users/{id}/followers", handlers.NewFollowersHandler(a.accounts, a.graph))

		r.Group(func(r chi.Router) {
			r.Use(tx)

			r.Post("/users/follow/{id}", handlers.NewFollowHandler(a.graph))
			r.Post("/users/stop-following/{id}", handlers.NewStopFollowingHandler(a.graph))
			r.Post("/users/profile", handlers.NewUpdateProfileHandler(a.accounts))
			r.Post("/users/delete", handlers.NewDeleteAccountHandler(a.accounts, a.sessions))
			r.Post("/messages/new", handlers.NewPostMessageHandler(a.messages))
			r.Post("/messages/{id}/delete", handlers.NewDeleteMessageHandler(a.messages))
			r.Post("/messages/{id}/like", handlers.NewLikeHandler(a.likes))
			r.Post("/messages/{id}/unlike", handlers.NewUnlikeHandler(a.likes))
		})
	})

	return r
}

// newHealthServer returns a gRPC server exposing the standard health service,
// reporting the service as serving.
func newHealthServer() (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(logger.ServiceName, healthpb.HealthCheckResponse_SERVING)
	return grpcServer, healthServer
}

// run initializes the logger, database, Redis, Kafka writer, HTTP server
// and gRPC health server, then blocks until shutdown.
func run(ctx context.Context,
	appHost, appPort, grpcPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	kafkaBrokers []string, kafkaTopic string,
	jwtSecretKey string, jwtExpSecond int,
	bcryptCost int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection: %w", err)
	}

	// Kafka activity events
	var events services.EventWriter
	if len(kafkaBrokers) > 0 {
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(kafkaBrokers...),
			Topic:                  kafkaTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer writer.Close()
		events = writer
		logger.Log.Infof("Publishing activity events to %s on %v", kafkaTopic, kafkaBrokers)
	} else {
		logger.Log.Info("KAFKA_BROKERS not set, activity events disabled")
	}

	tokens := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	a := newApp(db, rdb, events, tokens, hasher.New(bcryptCost))
	r := newRouter(db, a, fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", appHost, grpcPort))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	grpcServer, healthServer := newHealthServer()

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	go func() {
		logger.Log.Infof("gRPC health server listening on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr := <-errChan:
		grpcServer.Stop()
		return serveErr
	}

	healthServer.Shutdown()
	grpcServer.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("Servers stopped gracefully")
	return nil
}
