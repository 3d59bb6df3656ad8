package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"yatube/api/middleware"
	"yatube/api/routes"
	"yatube/config"
	"yatube/db"
	"yatube/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := services.InitRedis(); err != nil {
		// Без Redis кеш страниц работает на локальной карте
		log.Printf("Warning: Redis initialization failed: %v", err)
	}

	defer services.CloseRedis()

	if err := services.InitRabbitMQ(); err != nil {
		// Без брокера события постов просто не публикуются
		log.Printf("Warning: RabbitMQ initialization failed: %v", err)
	}
	defer services.CloseRabbitMQ()

	cacheTTL := time.Duration(config.AppConfig.Cache.TTL) * time.Second
	services.PageCacheInstance = services.NewPageCache(cacheTTL)

	router := gin.Default()
	router.Use(middleware.PrometheusMiddleware("yatube"))

	routes.PublicApi(router)

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
