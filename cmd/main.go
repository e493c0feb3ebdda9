package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sourcexpet_admin_v1/internal/controller"
	"sourcexpet_admin_v1/internal/model"
	"sourcexpet_admin_v1/internal/repository"
	"sourcexpet_admin_v1/internal/router"
	"sourcexpet_admin_v1/internal/service"
	"sourcexpet_admin_v1/internal/task"
	"sourcexpet_admin_v1/pkg/config"
	"sourcexpet_admin_v1/pkg/database"
	"sourcexpet_admin_v1/pkg/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	logger.Init(cfg.Server.Mode)
	defer logger.Sync()

	gin.SetMode(ginMode(cfg.Server.Mode))

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db)

	// 4. 启动定时任务
	initTasks(cfg, deps)

	// 5. 初始化路由
	uploadsDir := ""
	if cfg.Storage.Provider == "local" {
		uploadsDir = cfg.Storage.BasePath
	}
	r := router.SetupRouter(deps.Controllers, uploadsDir)

	// 6. 启动服务
	startServer(cfg, r)
}

func ginMode(mode string) string {
	if mode == "release" {
		return gin.ReleaseMode
	}
	return gin.DebugMode
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Storage service.StorageProvider
	Catalog *service.CatalogClient
	Product *service.ProductService
	Form    *service.FormService
	Upload  *service.UploadService
	Submit  *service.SubmitService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN, &model.Product{})
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	productRepo := repository.NewProductRepository(db)

	// -------- 存储服务 --------
	storage := initStorage(cfg)

	// -------- 目录客户端 --------
	catalog := service.NewCatalogClient(&service.CatalogClientConfig{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second,
		Debug:   cfg.Catalog.Debug,
	})

	// -------- 业务服务 --------
	services := &Services{
		Storage: storage,
		Catalog: catalog,
		Product: service.NewProductService(productRepo, storage),
		Form:    service.NewFormService(catalog),
	}
	services.Upload = service.NewUploadService(storage)
	services.Submit = service.NewSubmitService(catalog)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Product: controller.NewProductController(services.Product),
		Draft:   controller.NewDraftController(services.Form, services.Upload, services.Submit),
	}

	return &Dependencies{
		DB:          db,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorage 初始化存储服务
func initStorage(cfg *config.Config) service.StorageProvider {
	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
	})
	if err != nil {
		// 上传网关是必备依赖，配置错了直接启动失败
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies) {
	cleanup := task.NewSessionCleanupTask(
		deps.Services.Form,
		time.Duration(cfg.Session.MaxIdleMinutes)*time.Minute,
	)
	cleanup.Start(time.Duration(cfg.Session.CleanupIntervalMinutes) * time.Minute)
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg *config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
