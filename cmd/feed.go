package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-blog-exact/pkg/feed"
	"github.com/shouni/go-blog-exact/pkg/preview"
	"github.com/shouni/go-blog-exact/pkg/writer"
)

const defaultFeedOutputPath = "feed.csv"

// フィードURLと出力先を保持するフラグ変数
var (
	feedURL     string
	feedOutput  string
	feedPreview bool
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "ブログのRSS/Atomフィードから記事のメタデータを取得し、CSVファイルに書き出します",
	Long: `指定されたURLからRSSまたはAtomフィードを取得し、各記事を scrape と同じ列構成でCSVファイルに書き出します。
フィードには著者ページのURLが含まれないため、その列は空になります。`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		processedURL, err := ensureScheme(feedURL)
		if err != nil {
			return fmt.Errorf("URLスキームの処理エラー: %w", err)
		}

		client := GetGlobalFetcher()
		if client == nil {
			return fmt.Errorf("HTTPクライアントの取得に失敗しました")
		}
		parser := feed.NewParser(client)

		ctx, cancel := overallContext()
		defer cancel()

		log.Printf("処理対象フィードURL: %s", processedURL)
		parsedFeed, err := parser.FetchAndParse(ctx, processedURL)
		if err != nil {
			return fmt.Errorf("フィード解析パイプラインの実行エラー: %w", err)
		}

		records := feed.Records(parsedFeed)
		if err := writer.Write(feedOutput, records); err != nil {
			return err
		}

		if feedPreview {
			preview.Render(os.Stdout, records)
		}
		log.Printf("完了: フィード「%s」から %d 件の記事を %s に書き出しました", parsedFeed.Title, len(records), feedOutput)
		return nil
	},
}

func init() {
	feedCmd.Flags().StringVarP(&feedURL, "url", "u", "", "解析対象のフィード (RSS/Atom) URL")
	feedCmd.Flags().StringVarP(&feedOutput, "output", "o", defaultFeedOutputPath, "出力するCSVファイルのパス")
	feedCmd.Flags().BoolVar(&feedPreview, "preview", false, "取得結果を表形式で標準出力に表示する")

	cobra.CheckErr(feedCmd.MarkFlagRequired("url"))
}
