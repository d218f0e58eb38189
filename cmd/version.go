package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// 构建时通过-ldflags注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// versionCmd 版本信息命令
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blog-platform %s (built %s)\n", Version, BuildTime)
	},
}
