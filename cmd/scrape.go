package cmd

import (
	"fmt"
	"log"
	"os"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-blog-exact/internal/pipeline"
	"github.com/shouni/go-blog-exact/pkg/fetcher"
	"github.com/shouni/go-blog-exact/pkg/preview"
)

const (
	defaultBaseURL    = "https://m.signalvnoise.com"
	defaultOutputPath = "posts.csv"
)

// scrapeFlags は scrape コマンド固有のフラグを保持します。
var scrapeFlags struct {
	baseURL     string
	page        int
	output      string
	stripCommas bool
	preview     bool
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "ブログの一覧ページから記事のメタデータを抽出し、CSVファイルに書き出します",
	Long: `ブログの一覧ページ (またはその /page/N) を1回のGETリクエストで取得し、
各記事のタイトル・著者・公開日・記事URL・著者URL・著者画像URLを抽出してCSVファイルに書き出します。
取得に失敗した場合、またはページ構造が想定と異なる場合はエラーで終了します。`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. ベースURLのスキーム補完とバリデーション
		baseURL, err := ensureScheme(scrapeFlags.baseURL)
		if err != nil {
			return fmt.Errorf("URLスキームの処理エラー: %w", err)
		}

		// 2. 依存性の初期化
		client := GetGlobalFetcher()
		if client == nil {
			return fmt.Errorf("HTTPクライアントの取得に失敗しました")
		}

		ctx, cancel := overallContext()
		defer cancel()

		cfg := pipeline.Config{
			BaseURL:     baseURL,
			Page:        scrapeFlags.page,
			OutputPath:  scrapeFlags.output,
			StripCommas: scrapeFlags.stripCommas,
		}
		log.Printf("処理対象URL: %s", fetcher.PageURL(cfg.BaseURL, cfg.Page))

		// 3. メインロジックの実行
		records, err := pipeline.ScrapePosts(ctx, client, cfg)
		if err != nil {
			return fmt.Errorf("スクレイピングパイプラインの実行エラー: %w", err)
		}

		// 4. 結果の出力
		if clibase.Flags.Verbose {
			for i, r := range records {
				log.Printf("[%d] %s (%s)", i+1, r.Title, r.BlogURL)
			}
		}
		if scrapeFlags.preview {
			preview.Render(os.Stdout, records)
		}
		log.Printf("完了: %d 件の記事を %s に書き出しました", len(records), cfg.OutputPath)
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeFlags.baseURL, "base-url", "b", defaultBaseURL, "一覧ページのベースURL")
	scrapeCmd.Flags().IntVar(&scrapeFlags.page, "page", 0, "取得するページ番号 (0 の場合は1ページ目)")
	scrapeCmd.Flags().StringVarP(&scrapeFlags.output, "output", "o", defaultOutputPath, "出力するCSVファイルのパス")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.stripCommas, "strip-commas", false, "抽出した値からカンマを除去する (クォートなしの出力との互換用)")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.preview, "preview", false, "抽出結果を表形式で標準出力に表示する")
}
