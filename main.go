package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"donelist/handlers"
	"donelist/store"
	"donelist/utils"
)

func main() {
	// Load environment variables
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}

	logger := log.New()
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		logger.SetLevel(log.DebugLevel)
	}
	logger.WithField("environment", os.Getenv("APP_ENV")).Info("starting")

	// Initialize the database connection pool
	dbPool, err := store.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	redisClient := utils.OpenRedisPool(os.Getenv("REDIS_URL"))
	defer redisClient.Close()
	sessions := utils.NewSessionStore(redisClient)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	handlers.Register(e, store.New(dbPool), sessions, logger)

	listenAddr := ":8080"
	if port, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + port
	}
	e.Logger.Fatal(e.Start(listenAddr))
}
