// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haierkeys/document-vault-service/internal/dao"
	"github.com/haierkeys/document-vault-service/internal/domain"
	"github.com/haierkeys/document-vault-service/internal/service"
	pkgapp "github.com/haierkeys/document-vault-service/pkg/app"
	"github.com/haierkeys/document-vault-service/pkg/cdn"
	"github.com/haierkeys/document-vault-service/pkg/storage"
	"github.com/haierkeys/document-vault-service/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool *workerpool.Pool

	// 对象存储与 CDN
	Store  storage.Storager
	Signer *cdn.Signer

	// Repository 层
	DocumentRepo domain.DocumentRepository
	LinkRepo     domain.LinkRepository

	// Service 层
	DocumentService service.DocumentService
	LinkService     service.LinkService
	CleanupService  service.CleanupService

	// StartTime 服务启动时间
	StartTime time.Time
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:    cfg,
		logger:    logger,
		DB:        db,
		StartTime: time.Now(),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger)

	// 创建 DatabaseConfig 用于 DAO
	dbConfig := &dao.DatabaseConfig{
		Type:            cfg.Database.Type,
		Path:            cfg.Database.Path,
		UserName:        cfg.Database.UserName,
		Password:        cfg.Database.Password,
		Host:            cfg.Database.Host,
		Name:            cfg.Database.Name,
		TablePrefix:     cfg.Database.TablePrefix,
		AutoMigrate:     cfg.Database.AutoMigrate,
		Charset:         cfg.Database.Charset,
		ParseTime:       cfg.Database.ParseTime,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RunMode:         cfg.Server.RunMode,
	}

	// 初始化 DAO
	a.Dao = dao.New(db, dbConfig)

	// 初始化对象存储客户端（长生命周期句柄，注入各服务）
	store, err := storage.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}
	a.Store = store

	// CDN 签名器：后端支持签名时启用
	urlSigner, _ := store.(storage.URLSigner)
	a.Signer = cdn.NewSigner(&cfg.Cdn, urlSigner, cdn.WithLogger(logger))

	// 初始化 Repository 层
	a.DocumentRepo = dao.NewDocumentRepository(a.Dao)
	a.LinkRepo = dao.NewLinkRepository(a.Dao)

	// 初始化 Service 层（依赖注入）
	a.DocumentService = service.NewDocumentService(a.DocumentRepo, a.Store, a.Signer, logger)
	a.LinkService = service.NewLinkService(a.LinkRepo, a.DocumentRepo, a.Store, a.Signer, logger)
	a.CleanupService = service.NewCleanupService(a.LinkRepo, a.workerPool, logger)

	logger.Info("App container initialized successfully",
		zap.String("storageType", cfg.Storage.Type),
		zap.Bool("cdnEnabled", a.Signer.IsEnabled()),
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("worker pool shutdown failed", zap.Error(err))
		}
	}

	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool 并等待完成
// 返回错误如果池已满或已关闭
func (a *App) SubmitTask(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.Submit(ctx, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, task func(context.Context) error) error {
	return a.workerPool.SubmitAsync(ctx, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}
