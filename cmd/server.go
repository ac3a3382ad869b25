package cmd

import (
	"EchoFM/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动EchoFM服务器",
	Long:  `启动EchoFM音乐系统的HTTP服务器，提供API服务和播放状态推送`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
