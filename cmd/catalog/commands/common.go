package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/catalog/internal/platform/config"
	"github.com/jinford/catalog/internal/platform/container"
	"github.com/jinford/catalog/internal/platform/database"
	"github.com/jinford/catalog/internal/platform/logger"
)

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config    *config.Config
	Container *container.Container
}

// loadConfig は設定を読み込み、ロガーを初期化する
func loadConfig(envFile string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.SlogLevel()
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	return cfg, logger.New(logCfg), nil
}

// NewAppContext は設定ファイルを読み込み、ストアに接続して AppContext を作成する
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, appLogger, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}

	cont, err := container.New(ctx, appLogger, cfg)
	if err != nil {
		return nil, fmt.Errorf("コンテナの初期化に失敗: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Container: cont,
	}, nil
}

// Close はAppContextが保持するリソースをクリーンアップする
func (ac *AppContext) Close() {
	if ac.Container != nil {
		ac.Container.Close()
	}
}

// Logger はAppContextのロガーを返す
func (ac *AppContext) Logger() *slog.Logger {
	if ac.Container != nil {
		return ac.Container.Logger
	}
	return slog.Default()
}

// openDatabase は STORE_DRIVER に関わらず PostgreSQL に接続する
func openDatabase(ctx context.Context, envFile string) (*database.Database, *slog.Logger, error) {
	cfg, appLogger, err := loadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	return db, appLogger, nil
}
