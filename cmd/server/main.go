package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/nexapost/internal/config"
	"github.com/nexapost/internal/db"
	"github.com/nexapost/internal/handler"
	"github.com/nexapost/internal/router"
	"github.com/nexapost/internal/service"
)

func main() {
	// 先加载 .env，缺失时直接使用进程环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// 初始化数据库
	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	mailer := service.NewSMTPMailer(cfg)
	api := handler.NewAPI(cfg, gdb, mailer)

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
