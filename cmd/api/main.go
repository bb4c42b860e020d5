package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yatube-go/internal/api/handler"
	"yatube-go/internal/api/middleware"
	"yatube-go/internal/api/router"
	"yatube-go/internal/cache"
	"yatube-go/internal/config"
	"yatube-go/internal/infra/database"
	infraES "yatube-go/internal/infra/elasticsearch"
	infraKafka "yatube-go/internal/infra/kafka"
	infraMinio "yatube-go/internal/infra/minio"
	infraRedis "yatube-go/internal/infra/redis"
	"yatube-go/internal/media"
	"yatube-go/internal/repository"
	"yatube-go/internal/service"
	"yatube-go/internal/view"
	"yatube-go/pkg/logger"
	"yatube-go/pkg/utils"

	_ "yatube-go/api/openapi"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Yatube API
// @version 1.0
// @description 博客平台 Yatube 的只读接口与关注接口

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load(config.Path())
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	imageStore, err := infraMinio.New(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// 初始化Kafka生产者
	publisher := infraKafka.NewPublisher(&cfg.Kafka)
	defer publisher.Close()

	// 初始化 Elasticsearch（可选，失败则搜索降级到 DB）
	var searcher service.PostSearcher
	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
	} else {
		defer infraES.Close()
		postIndex := infraES.NewPostIndex(cfg.Elasticsearch.PostsIndex())
		if err := postIndex.EnsureIndex(context.Background()); err != nil {
			logger.Warn("Elasticsearch index init failed", zap.Error(err))
		}
		searcher = postIndex
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	uploader := media.NewUploader(imageStore)
	tokens := &utils.TokenIssuer{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.ExpireDuration(),
		Issuer: cfg.App.Name,
	}

	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo, uploader, publisher)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	searchService := service.NewSearchService(postRepo, searcher)

	renderer, err := view.New(uploader)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}
	pageCache := cache.NewPageCache(infraRedis.Get(), cfg.Cache.KeyPrefix, cfg.Cache.IndexTTL())

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()
	r.HTMLRender = renderer
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Identity(cfg.Session.CookieName, authService.UserFromToken))

	r.GET("/healthz", healthCheckHandler(cfg))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, router.Handlers{
		Post:    handler.NewPostHandler(postService, renderer, pageCache),
		Comment: handler.NewCommentHandler(commentService),
		Follow:  handler.NewFollowHandler(followService),
		Auth: handler.NewAuthHandler(authService, handler.SessionOptions{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.JWT.ExpireDuration(),
			Secure:     cfg.Session.Secure,
		}),
		Search: handler.NewSearchHandler(searchService),
		API:    handler.NewAPIHandler(postService, followService, searchService, uploader, pageCache),
	}, cfg.App.Admins)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.String("minio", cfg.MinIO.Endpoint),
		zap.Bool("elasticsearch", infraES.Enabled()),
	)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		logger.Info("Server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// healthCheckHandler 健康检查：数据库和 Redis 任一不可用时返回 503
func healthCheckHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok", "redis": "ok"}
		status := http.StatusOK
		if err := database.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := infraRedis.Ping(ctx); err != nil {
			checks["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if status != http.StatusOK {
			logger.Warn("Health check failed", zap.Any("checks", checks))
		}

		c.JSON(status, gin.H{
			"service":       cfg.App.Name,
			"version":       cfg.App.Version,
			"timestamp":     time.Now().Format(time.RFC3339),
			"checks":        checks,
			"elasticsearch": infraES.Enabled(),
		})
	}
}
