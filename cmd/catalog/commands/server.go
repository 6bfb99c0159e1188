package commands

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

// ServerStartAction はHTTPサーバを起動するコマンドのアクション
func ServerStartAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	// 共通コンテキストの初期化
	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	gin.SetMode(gin.ReleaseMode)

	appCtx.Logger().Info("商品APIサーバを起動",
		"store", appCtx.Config.Store.Driver,
		"page_size", appCtx.Config.PageSize,
	)

	return appCtx.Container.HTTPServer(int(cmd.Int("port"))).Run(ctx)
}
