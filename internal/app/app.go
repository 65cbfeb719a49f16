package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"deslimste/internal/repository"
	"deslimste/internal/service"
	"deslimste/internal/store"
	"deslimste/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Options configures the application container
type Options struct {
	MongoURI    string
	RedisURI    string
	JWTSecret   string
	MemoryStore bool // run against the in-memory store instead of Redis
}

// App wires the replicated store, repositories and services together
type App struct {
	Store        store.Store
	QuestionRepo repository.QuestionRepo
	AuthService  *service.AuthService
	Lifecycle    *service.Lifecycle
	Sessions     *service.SessionManager
	WSHub        *ws.Hub

	mongoClient *mongo.Client
	redisClient *redis.Client
}

// New connects to MongoDB and Redis and builds the service graph
func New(ctx context.Context, opts Options) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Println("Connected to MongoDB")

	a := &App{mongoClient: mongoClient}

	if opts.MemoryStore {
		a.Store = store.NewMemory()
		log.Println("Using in-memory store")
	} else {
		redisAddr := strings.TrimPrefix(opts.RedisURI, "redis://")
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			mongoClient.Disconnect(ctx)
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		log.Println("Connected to Redis")
		a.redisClient = rdb
		a.Store = store.NewRedis(rdb)
	}

	a.QuestionRepo = repository.NewQuestionRepo(mongoClient)

	supplier := service.NewQuestionSupplier(a.QuestionRepo, a.Store)
	sched := service.NewScheduler()

	a.Lifecycle = service.NewLifecycle(a.Store, supplier)
	a.AuthService = service.NewAuthService(a.Lifecycle, opts.JWTSecret)
	a.Sessions = service.NewSessionManager(a.Store, supplier, a.Lifecycle, sched)
	a.WSHub = ws.NewHub(a.Store)

	return a, nil
}

// Close releases the database connections
func (a *App) Close(ctx context.Context) {
	if a.redisClient != nil {
		a.redisClient.Close()
	}
	if a.mongoClient != nil {
		a.mongoClient.Disconnect(ctx)
	}
}
