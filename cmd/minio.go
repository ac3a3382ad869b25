package cmd

import (
	"context"
	"fmt"
	"log"

	"EchoFM/config"
	"EchoFM/storage"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
)

var minioPrefix string

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO存储桶检查",
	Long:  `列出MinIO存储桶中的对象，用于检查上传结果与排查存储问题。`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("无法连接到MinIO: %v", err)
		}
		fmt.Println("MinIO连接成功！")

		client := storage.GetMinioClient()
		ctx := context.Background()

		var totalSize int64
		var count int64
		objectCh := client.ListObjects(ctx, cfg.MinioBucket, minio.ListObjectsOptions{
			Prefix:    minioPrefix,
			Recursive: true,
		})
		for object := range objectCh {
			if object.Err != nil {
				log.Printf("列出对象时出错: %v", object.Err)
				continue
			}
			fmt.Printf("%s\t%.2f MB\t%s\n", object.Key, float64(object.Size)/1024/1024, object.LastModified.Format("2006-01-02 15:04:05"))
			totalSize += object.Size
			count++
		}

		fmt.Printf("\n共 %d 个对象, 总大小 %.2f MB\n", count, float64(totalSize)/1024/1024)
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)

	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "按前缀过滤对象")

	minioCmd.Example = `  # 列出所有对象
  echofm minio

  # 只看歌曲文件
  echofm minio -p "songs/"`
}
