package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"record-system/config"
	"record-system/internal/csvdb"
	"record-system/internal/handler"
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	"record-system/pkg/logger"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载环境变量与配置
	_ = godotenv.Load()
	cfg := config.LoadConfig("config/config.yaml")

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 游戏出借服务启动 ===")
	log.Info("服务配置信息",
		zap.String("port", cfg.Lending.Server.Port),
		zap.String("data_dir", cfg.Lending.Storage.DataDir),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 打开CSV数据表
	dataDir := cfg.Lending.Storage.DataDir
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatal("创建数据目录失败", zap.Error(err))
	}
	gamesTable, err := csvdb.NewTable(filepath.Join(dataDir, "games.csv"), model.GameCodec{}, log)
	if err != nil {
		log.Fatal("打开games表失败", zap.Error(err))
	}
	friendsTable, err := csvdb.NewTable(filepath.Join(dataDir, "friends.csv"), model.FriendCodec{}, log)
	if err != nil {
		log.Fatal("打开friends表失败", zap.Error(err))
	}
	loansTable, err := csvdb.NewTable(filepath.Join(dataDir, "loans.csv"), model.LoanCodec{}, log)
	if err != nil {
		log.Fatal("打开loans表失败", zap.Error(err))
	}
	log.Info("数据表就绪",
		zap.String("games", gamesTable.Path()),
		zap.String("friends", friendsTable.Path()),
		zap.String("loans", loansTable.Path()),
	)

	// 3.1 组装业务服务
	gameRepo := repository.NewGameRepository(gamesTable)
	friendRepo := repository.NewFriendRepository(friendsTable)
	loanRepo := repository.NewLoanRepository(loansTable)
	exportSvc := service.NewExportService()

	handlers := handler.LendingHandlers{
		Games:         handler.NewGameHandler(service.NewGameService(gameRepo)),
		Friends:       handler.NewFriendHandler(service.NewFriendService(friendRepo)),
		Loans:         handler.NewLoanHandler(service.NewLoanService(loanRepo, gameRepo, friendRepo)),
		GameExports:   handler.NewExportHandler(exportSvc, gameRepo),
		FriendExports: handler.NewExportHandler(exportSvc, friendRepo),
		LoanExports:   handler.NewExportHandler(exportSvc, loanRepo),
	}

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()
	router.Use(logger.Middleware(log))
	router.Use(logger.Recovery(log))

	// 6. 挂载路由
	setupBasicRoutes(router, dataDir)
	handler.RegisterLendingRoutes(router, handlers)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Lending.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Lending.Server.ReadTimeout,
		WriteTimeout: cfg.Lending.Server.WriteTimeout,
		IdleTimeout:  cfg.Lending.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Lending.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine, dataDir string) {
	// 健康检查：数据目录可用即视为健康
	// 完整url为：http://localhost:8080/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
			status = "storage-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	// 完整url为：http://localhost:8080/
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message":  "游戏出借记录服务",
			"version":  "1.0.0",
			"entities": []string{"games", "friends", "loans"},
		})
	})
}
