package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	redisDriver "github.com/redis/go-redis/v9"

	"filmorate-go/internal/config"
	"filmorate-go/internal/handlers/apiserver"
	appKafka "filmorate-go/internal/kafka"
	appRedis "filmorate-go/internal/redis"
	"filmorate-go/internal/services"
	"filmorate-go/internal/storage"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("%s %s configuration loaded.", cfg.AppName, cfg.AppVersion)

	// 2. Initialize repositories: either GORM on postgres or the
	// in-memory set for local development.
	var (
		userRepo       storage.UserRepository
		filmRepo       storage.FilmRepository
		genreRepo      storage.GenreRepository
		mpaRepo        storage.MpaRepository
		friendshipRepo storage.FriendshipRepository
		likeRepo       storage.LikeRepository
		eventRepo      storage.EventRepository
	)

	if cfg.Database.Type == "memory" {
		userRepo = storage.NewMemoryUserRepository()
		filmRepo = storage.NewMemoryFilmRepository()
		genreRepo = storage.NewMemoryGenreRepository()
		mpaRepo = storage.NewMemoryMpaRepository()
		friendshipRepo = storage.NewMemoryFriendshipRepository()
		likeRepo = storage.NewMemoryLikeRepository()
		eventRepo = storage.NewMemoryEventRepository()
		log.Println("Using in-memory repositories.")
	} else {
		db, err := storage.InitDB(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		if err := storage.AutoMigrateTables(db); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		if err := storage.SeedCatalogs(db); err != nil {
			log.Fatalf("Seeding catalogs failed: %v", err)
		}
		log.Println("Database connection, migration and catalog seed complete.")

		userRepo = storage.NewGormUserRepository(db)
		filmRepo = storage.NewGormFilmRepository(db)
		genreRepo = storage.NewGormGenreRepository(db)
		mpaRepo = storage.NewGormMpaRepository(db)
		friendshipRepo = storage.NewGormFriendshipRepository(db)
		likeRepo = storage.NewGormLikeRepository(db)
		eventRepo = storage.NewGormEventRepository(db)
	}

	// 3. Initialize the popular-films cache (optional).
	var popularCache services.PopularCache
	if cfg.Redis.Addr != "" {
		redisClient := redisDriver.NewClient(&redisDriver.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			log.Printf("Warning: Redis unreachable at %s, running without popular cache: %v", cfg.Redis.Addr, err)
		} else {
			popularCache = appRedis.NewRedisPopularCache(redisClient, cfg.Redis.PopularTTL)
			log.Println("Popular-films cache connected to Redis.")
		}
	}

	// 4. Initialize the Kafka producer for activity events.
	kfkProducer, err := appKafka.NewConfluentKafkaProducer(cfg.Kafka)
	if err != nil {
		log.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer kfkProducer.Close()

	// 5. Initialize services.
	userService := services.NewUserService(userRepo, friendshipRepo, kfkProducer, cfg.Kafka)
	filmService := services.NewFilmService(filmRepo, userRepo, genreRepo, mpaRepo, likeRepo, popularCache, kfkProducer, cfg.Kafka)
	genreService := services.NewGenreService(genreRepo)
	mpaService := services.NewMpaService(mpaRepo)
	feedService := services.NewFeedService(userRepo, eventRepo)

	// 6. Initialize handlers.
	userHandler := apiserver.NewUserHandler(userService, feedService)
	filmHandler := apiserver.NewFilmHandler(filmService)
	catalogHandler := apiserver.NewCatalogHandler(genreService, mpaService)

	// 7. Set up HTTP routes.
	r := mux.NewRouter()

	usersRouter := r.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("", userHandler.CreateUserHandler).Methods(http.MethodPost)
	usersRouter.HandleFunc("", userHandler.UpdateUserHandler).Methods(http.MethodPut)
	usersRouter.HandleFunc("", userHandler.ListUsersHandler).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}", userHandler.GetUserHandler).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}", userHandler.DeleteUserHandler).Methods(http.MethodDelete)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/{friendId:[0-9]+}", userHandler.AddFriendHandler).Methods(http.MethodPut)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/{friendId:[0-9]+}", userHandler.RemoveFriendHandler).Methods(http.MethodDelete)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends", userHandler.ListFriendsHandler).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/friends/common/{otherId:[0-9]+}", userHandler.CommonFriendsHandler).Methods(http.MethodGet)
	usersRouter.HandleFunc("/{id:[0-9]+}/feed", userHandler.GetFeedHandler).Methods(http.MethodGet)

	filmsRouter := r.PathPrefix("/films").Subrouter()
	filmsRouter.HandleFunc("", filmHandler.CreateFilmHandler).Methods(http.MethodPost)
	filmsRouter.HandleFunc("", filmHandler.UpdateFilmHandler).Methods(http.MethodPut)
	filmsRouter.HandleFunc("", filmHandler.ListFilmsHandler).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/popular", filmHandler.PopularFilmsHandler).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id:[0-9]+}", filmHandler.GetFilmHandler).Methods(http.MethodGet)
	filmsRouter.HandleFunc("/{id:[0-9]+}", filmHandler.DeleteFilmHandler).Methods(http.MethodDelete)
	filmsRouter.HandleFunc("/{id:[0-9]+}/like/{userId:[0-9]+}", filmHandler.AddLikeHandler).Methods(http.MethodPut)
	filmsRouter.HandleFunc("/{id:[0-9]+}/like/{userId:[0-9]+}", filmHandler.RemoveLikeHandler).Methods(http.MethodDelete)

	r.HandleFunc("/genres", catalogHandler.ListGenresHandler).Methods(http.MethodGet)
	r.HandleFunc("/genres/{id:[0-9]+}", catalogHandler.GetGenreHandler).Methods(http.MethodGet)
	r.HandleFunc("/mpa", catalogHandler.ListMpaHandler).Methods(http.MethodGet)
	r.HandleFunc("/mpa/{id:[0-9]+}", catalogHandler.GetMpaHandler).Methods(http.MethodGet)

	// 8. Start the Kafka consumer feeding the activity feed.
	activityConsumer, err := appKafka.NewConfluentKafkaConsumer(cfg.Kafka)
	if err != nil {
		log.Fatalf("Failed to create activity Kafka consumer: %v", err)
	}
	defer activityConsumer.Close()

	consumerCtx, cancelConsumers := context.WithCancel(context.Background())
	defer cancelConsumers()

	go func() {
		topics := []string{cfg.Kafka.ActivityTopic}
		err := activityConsumer.Consume(consumerCtx, topics, cfg.Kafka.ConsumerGroup, feedService.ProcessActivityEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Activity Kafka consumer error: %v", err)
		}
	}()

	// 9. Start the HTTP server with graceful shutdown.
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	corsOptions := []handlers.CORSOption{
		handlers.AllowedOrigins(cfg.Server.CORS.AllowedOrigins),
		handlers.AllowedMethods(cfg.Server.CORS.AllowedMethods),
		handlers.AllowedHeaders(cfg.Server.CORS.AllowedHeaders),
		handlers.MaxAge(cfg.Server.CORS.MaxAge),
	}
	if cfg.Server.CORS.AllowCredentials {
		corsOptions = append(corsOptions, handlers.AllowCredentials())
	}
	handler := handlers.CORS(corsOptions...)(r)
	handler = handlers.LoggingHandler(os.Stdout, handler)

	srv := &http.Server{
		Addr:           serverAddr,
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    time.Second * 60,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Printf("API server listening on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, stopping API server...")

	cancelConsumers()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("API server forced to shut down: %v", err)
	}
	log.Println("API server stopped.")
}
