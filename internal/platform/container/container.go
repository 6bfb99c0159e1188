package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinford/catalog/internal/interface/rest"
	"github.com/jinford/catalog/internal/module/catalog/adapter/memory"
	catalogpg "github.com/jinford/catalog/internal/module/catalog/adapter/pg"
	"github.com/jinford/catalog/internal/module/catalog/application"
	"github.com/jinford/catalog/internal/module/catalog/domain"
	"github.com/jinford/catalog/internal/platform/config"
	"github.com/jinford/catalog/internal/platform/database"
)

// Container は設定から組み立てた依存関係を保持します
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database は STORE_DRIVER=memory の場合は nil です
	Database   *database.Database
	Repository domain.ProductRepository

	SearchService  *application.SearchService
	ProductService *application.ProductService

	closers []func()
}

type containerOptions struct {
	repository domain.ProductRepository
}

// Option は Container 構築時のオプション
type Option func(*containerOptions)

// WithRepository は商品リポジトリを差し替える
func WithRepository(repo domain.ProductRepository) Option {
	return func(opts *containerOptions) {
		opts.repository = repo
	}
}

// New は設定からコンテナを生成します
func New(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts ...Option) (*Container, error) {
	options := containerOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	repo := options.repository
	if repo == nil {
		var err error
		repo, err = c.newRepository(ctx)
		if err != nil {
			c.Close()
			return nil, err
		}
	}
	c.Repository = repo

	c.SearchService = application.NewSearchService(repo, cfg.PageSize, logger)
	c.ProductService = application.NewProductService(repo, logger)

	return c, nil
}

// openDatabase は PostgreSQL に接続し、Close 時に切断します
func (c *Container) openDatabase(ctx context.Context) (*database.Database, error) {
	if c.Database != nil {
		return c.Database, nil
	}

	db, err := database.New(ctx, database.ConnectionParams{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	})
	if err != nil {
		return nil, fmt.Errorf("データベース初期化に失敗しました: %w", err)
	}
	c.Database = db
	c.closers = append(c.closers, db.Close)
	return db, nil
}

func (c *Container) newRepository(ctx context.Context) (domain.ProductRepository, error) {
	switch c.Config.Store.Driver {
	case config.StoreDriverMemory:
		if c.Config.Store.SeedFile == "" {
			c.Logger.Warn("MEMORY_SEED_FILE is not set, starting with an empty catalog")
			return memory.NewProductRepository(nil), nil
		}
		repo, err := memory.LoadFile(c.Config.Store.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("メモリストア初期化に失敗しました: %w", err)
		}
		return repo, nil
	default:
		db, err := c.openDatabase(ctx)
		if err != nil {
			return nil, err
		}
		return catalogpg.NewProductRepository(db.Pool), nil
	}
}

// ProductHandler は商品APIのハンドラーを返します
func (c *Container) ProductHandler() *rest.ProductHandler {
	return rest.NewProductHandler(c.SearchService, c.ProductService)
}

// HTTPServer はHTTPサーバを組み立てます
func (c *Container) HTTPServer(port int) *rest.Server {
	router := rest.NewRouter(c.ProductHandler(), c.Logger)
	if port == 0 {
		port = c.Config.HTTP.Port
	}
	return rest.NewServer(router, rest.ServerConfig{
		Port:            port,
		ReadTimeout:     c.Config.HTTP.ReadTimeout,
		WriteTimeout:    c.Config.HTTP.WriteTimeout,
		ShutdownTimeout: c.Config.HTTP.ShutdownTimeout,
	}, c.Logger)
}

// Close は保持しているリソースを解放します
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
