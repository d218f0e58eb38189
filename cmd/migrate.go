package cmd

import (
	"fmt"
	"os"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/spf13/cobra"
)

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "执行数据库表迁移",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Printf("配置初始化失败: %v\n", err)
			os.Exit(1)
		}
		if err := logger.Init(); err != nil {
			fmt.Printf("日志初始化失败: %v\n", err)
			os.Exit(1)
		}
		if err := database.Init(); err != nil {
			fmt.Printf("数据库连接失败: %v\n", err)
			os.Exit(1)
		}
		if err := model.InitTables(database.GetDB()); err != nil {
			fmt.Printf("数据库迁移失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("数据库迁移完成")
	},
}
