// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edu-counsel-go/internal/config"
	"edu-counsel-go/internal/handler"
	"edu-counsel-go/internal/middleware"
	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/pipeline"
	"edu-counsel-go/internal/repository"
	"edu-counsel-go/internal/service"
	"edu-counsel-go/pkg/database"
	"edu-counsel-go/pkg/es"
	"edu-counsel-go/pkg/kafka"
	"edu-counsel-go/pkg/llm"
	"edu-counsel-go/pkg/log"
	"edu-counsel-go/pkg/storage"
	"edu-counsel-go/pkg/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Infof("日志记录器初始化成功, env=%s", cfg.App.Env)

	// 3. 初始化数据库、Redis、MinIO、Elasticsearch 和 Kafka
	database.InitPostgres(cfg.Database.Postgres.DSN)
	if err := database.DB.AutoMigrate(
		&model.Student{},
		&model.Program{},
		&model.ConversationTurn{},
		&model.Admin{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	studentRepo := repository.NewStudentRepository(database.DB)
	programRepo := repository.NewProgramRepository(database.DB)
	adminRepo := repository.NewAdminRepository(database.DB)
	conversationCache := repository.NewConversationCache(database.RDB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	llmClient := llm.NewClient(cfg.LLM)
	studentService := service.NewStudentService(studentRepo)
	programService := service.NewProgramService(programRepo, cfg.MinIO)
	adminService := service.NewAdminService(adminRepo, jwtManager)
	searchService := service.NewSearchService(es.ESClient, cfg.Elasticsearch.IndexName)
	chatService := service.NewChatService(studentRepo, programRepo, conversationCache, llmClient, cfg.Chat.HistoryWindow)

	// 6. 初始化索引同步管道 (Indexer) 并启动后台 Kafka 消费者
	indexer := pipeline.NewIndexer(programRepo, cfg.Elasticsearch)
	go kafka.StartConsumer(cfg.Kafka, indexer)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.GinMode())
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件、Gin 的 Recovery 中间件和 CORS
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// 8. 注册路由
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":     "Welcome to the Student Counseling API",
			"environment": cfg.App.Env,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"version":     "1.0.0",
			"environment": cfg.App.Env,
		})
	})

	api := r.Group("/api")
	{
		// Admin 路由组
		admin := api.Group("/admin")
		{
			// 无需认证的路由 (公开访问)
			admin.POST("/login", handler.NewAdminHandler(adminService).Login)
			admin.POST("/refreshToken", handler.NewAdminHandler(adminService).RefreshToken)

			// 需要认证与管理员授权的路由
			authed := admin.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, adminService), middleware.AdminAuthMiddleware())
			{
				authed.POST("/register", handler.NewAdminHandler(adminService).Register)
				authed.GET("/me", handler.NewAdminHandler(adminService).Me)
				authed.POST("/logout", handler.NewAdminHandler(adminService).Logout)
			}
		}

		// Student 路由组（学生档案与对话入口面向咨询前端，公开访问）
		students := api.Group("/students")
		{
			studentHandler := handler.NewStudentHandler(studentService, chatService)
			students.POST("", studentHandler.Create)
			students.GET("/:id", studentHandler.Get)
			students.PUT("/:id", studentHandler.Update)
			students.GET("/:id/conversation", studentHandler.GetConversation)
			students.POST("/:id/conversation", studentHandler.Converse)
			students.POST("/:id/analyze", studentHandler.Analyze)
		}

		// Program 路由组，需要认证与管理员授权
		programs := api.Group("/programs")
		programs.Use(middleware.AuthMiddleware(jwtManager, adminService), middleware.AdminAuthMiddleware())
		{
			programHandler := handler.NewProgramHandler(programService)
			programs.POST("", programHandler.Create)
			programs.GET("", programHandler.GetAll)
			programs.GET("/search", handler.NewSearchHandler(searchService).Search)
			programs.GET("/:id", programHandler.Get)
			programs.PUT("/:id", programHandler.Update)
			programs.DELETE("/:id", programHandler.Delete)
			programs.POST("/:id/brochure", programHandler.UploadBrochure)
			programs.GET("/:id/brochure", programHandler.GetBrochureURL)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	// Kafka 消费者的循环会在进程退出时自然结束，
	// 如果需要更精细的控制，可以在 StartConsumer 中实现一个关闭通道。
	log.Info("服务已优雅关闭")
}
