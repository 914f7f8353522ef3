package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"record-system/config"
	"record-system/internal/handler"
	"record-system/internal/model"
	"record-system/internal/repository"
	"record-system/internal/service"
	dbPkg "record-system/pkg/db"
	"record-system/pkg/logger"
	"record-system/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. 加载环境变量与配置
	_ = godotenv.Load()
	cfg := config.LoadConfig("config/config.yaml")

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 博客服务启动 ===")
	log.Info("服务配置信息",
		zap.String("port", cfg.Blog.Server.Port),
		zap.String("database_host", cfg.Blog.Database.Host),
		zap.Int("database_port", cfg.Blog.Database.Port),
		zap.String("database_name", cfg.Blog.Database.Database),
		zap.String("database_user", cfg.Blog.Database.Username),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	db, err := dbPkg.InitDB(cfg.Blog.Database)
	if err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(db); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构，父表先于子表以便建立外键
	if err := dbPkg.AutoMigrate(db,
		&model.User{},
		&model.Category{},
		&model.Post{},
		&model.PostCategory{},
		&model.Comment{},
		&model.Like{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 组装业务服务
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	handlers := handler.BlogHandlers{
		Users:      handler.NewUserHandler(service.NewUserService(userRepo)),
		Posts:      handler.NewPostHandler(service.NewPostService(postRepo, userRepo, categoryRepo)),
		Comments:   handler.NewCommentHandler(service.NewCommentService(commentRepo, postRepo, userRepo)),
		Categories: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
		Likes:      handler.NewLikeHandler(service.NewLikeService(likeRepo, userRepo, postRepo)),
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
	setupBasicRoutes(router, db)
	handler.RegisterBlogRoutes(router, handlers)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Blog.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Blog.Server.ReadTimeout,
		WriteTimeout: cfg.Blog.Server.WriteTimeout,
		IdleTimeout:  cfg.Blog.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Blog.Server.Port))
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
func setupBasicRoutes(router *gin.Engine, db *gorm.DB) {
	// 健康检查
	// 完整url为：http://localhost:8081/health
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(db); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	// 完整url为：http://localhost:8081/
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message":  "博客内容服务",
			"version":  "1.0.0",
			"entities": []string{"users", "posts", "comments", "categories", "likes"},
		})
	})
}
