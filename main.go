package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/j15z/portfolio/api"
	"github.com/j15z/portfolio/cache"
	"github.com/j15z/portfolio/common"
	"github.com/j15z/portfolio/database"
	"github.com/j15z/portfolio/site"
	"github.com/j15z/portfolio/studio"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db := common.ConnectDb()
	if db == nil {
		log.Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := studio.Configure(os.Getenv("STUDIO_PASSWORD")); err != nil {
		log.Fatal("Failed to configure studio password:", err)
	}

	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set")
	}

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400, // studio sessions last 24h
		HttpOnly: true,
		Secure:   false,
	})

	router.Use(sessions.Sessions("portfolio-session", store))
	router.Use(cache.Middleware(cache.MaxAge))

	router.SetFuncMap(map[string]interface{}{
		"now": func() time.Time {
			return time.Now()
		},
		"domain": func() string {
			d := os.Getenv("DOMAIN")
			if d == "" {
				return "http://localhost:8080"
			}
			return d
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})

	router.LoadHTMLGlob("*/views/*.html")

	router.Static("/public", "./public")

	siteModule := site.NewSiteModule(db)
	siteModule.RegisterRoutes(router)

	apiModule := api.NewApiModule(db)
	apiModule.RegisterRoutes(router)

	studioModule := studio.NewStudioModule(db)
	studioModule.RegisterRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
