package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lumenfolio/internal/config"
	"github.com/lumenfolio/internal/db"
	"github.com/lumenfolio/internal/router"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 按需创建超级管理员
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		log.Fatalf("failed to ensure root user: %v", err)
	}

	if !cfg.Storage.Configured() {
		log.Println("storage is not configured, signed URL endpoints are disabled")
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, &cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
