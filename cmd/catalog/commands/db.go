package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/jinford/catalog/internal/platform/database"
)

// DBMigrateAction はマイグレーションを適用するコマンドのアクション
func DBMigrateAction(ctx context.Context, cmd *cli.Command) error {
	db, log, err := openDatabase(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db, log)
	if err != nil {
		return fmt.Errorf("マイグレーションに失敗: %w", err)
	}

	if len(applied) == 0 {
		fmt.Println("適用するマイグレーションはありません")
		return nil
	}
	fmt.Printf("✓ %d 件のマイグレーションを適用しました\n", len(applied))
	for _, version := range applied {
		fmt.Printf("  - %s\n", version)
	}
	return nil
}
