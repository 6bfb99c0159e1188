package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/catalog/cmd/catalog/commands"
)

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "catalog",
		Usage: "商品カタログ検索APIおよび管理コマンド",
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "HTTPサーバコマンド",
				Commands: []*cli.Command{
					{
						Name:  "start",
						Usage: "商品APIサーバを起動",
						Flags: []cli.Flag{
							envFlag(),
							&cli.IntFlag{
								Name:  "port",
								Usage: "待ち受けポート（省略時は HTTP_PORT）",
							},
						},
						Action: commands.ServerStartAction,
					},
				},
			},
			{
				Name:  "db",
				Usage: "データベース管理コマンド",
				Commands: []*cli.Command{
					{
						Name:   "migrate",
						Usage:  "スキーママイグレーションを適用",
						Flags:  []cli.Flag{envFlag()},
						Action: commands.DBMigrateAction,
					},
				},
			},
			{
				Name:  "product",
				Usage: "商品コマンド",
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "商品一覧を検索して表示",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:  "search",
								Usage: "検索語",
							},
							&cli.StringFlag{
								Name:  "page",
								Usage: "ページ番号",
							},
						},
						Action: commands.ProductListAction,
					},
					{
						Name:  "show",
						Usage: "商品詳細を表示",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:     "id",
								Usage:    "商品ID",
								Required: true,
							},
						},
						Action: commands.ProductShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
