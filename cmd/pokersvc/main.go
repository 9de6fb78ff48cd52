package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"

	log "github.com/sirupsen/logrus"
	config "github.com/unipoker/poker-services/configs"
	nats "github.com/unipoker/poker-services/internal/nats"
	"github.com/unipoker/poker-services/internal/pokersvc/broker"
	"github.com/unipoker/poker-services/internal/pokersvc/db"
	handlers "github.com/unipoker/poker-services/internal/pokersvc/handlers"
	"github.com/unipoker/poker-services/internal/pokersvc/ratelimit"
	"github.com/unipoker/poker-services/internal/pokersvc/service"
	"github.com/unipoker/poker-services/internal/pokersvc/store"
)

const SERVICE_NAME = "poker"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// mongo holds the chat room history
	mongoDB, cancelMongo, err := db.ConnectMongo()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancelMongo()
	if err := db.CreateTTLIndexForCollection(mongoDB, store.ChatCollection); err != nil {
		log.Fatalf("Failed to create chat TTL index: %v", err)
	}
	log.Printf("mongo connection established successfully")

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	gameStore := store.NewGameStore(dbpool)
	gamePlayerStore := store.NewGamePlayerStore(dbpool)
	gameService := service.NewGameService(gameStore, gamePlayerStore)

	joinRequestStore := store.NewJoinRequestStore(dbpool)
	joinRequestService := service.NewJoinRequestService(gameStore, gamePlayerStore, joinRequestStore, userStore)

	ledgerStore := store.NewLedgerStore(dbpool)
	ledgerService := service.NewLedgerService(gameStore, gamePlayerStore, ledgerStore)

	statsService := service.NewStatsService(userStore, gameStore, ledgerStore)

	chatStore := store.NewChatStore(mongoDB, chatRetention())
	chatService := service.NewChatService(chatStore, chatLimiter())

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// bridge live chat traffic from the socket service
	b := broker.NewBroker(n.Conn, chatService)
	sub, err := b.SubscribeChatInbound()
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(userService, gameService, joinRequestService, ledgerService, statsService, chatService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("POKER_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

// chatLimiter builds the per-user chat limiter. With REDIS_ADDR set the
// counters are shared across instances; otherwise they stay in-process.
func chatLimiter() *ratelimit.Limiter {
	limit := envInt("CHAT_RATE_LIMIT", 5)
	window := time.Duration(envInt("CHAT_RATE_WINDOW_SECONDS", 10)) * time.Second

	var counters ratelimit.CounterStore
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to redis at %s: %v", addr, err)
		}
		counters = ratelimit.NewRedisStore(rdb)
		log.Printf("redis connection established successfully")
	} else {
		counters = ratelimit.NewMemoryStore()
		log.Warn("REDIS_ADDR not set, chat rate limits are per-instance only")
	}

	return ratelimit.New(counters, limit, window)
}

func chatRetention() time.Duration {
	hours := envInt("CHAT_RETENTION_HOURS", 0)
	return time.Duration(hours) * time.Hour
}

func envInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid %s value: %v", key, err)
	}
	return v
}
