package pipeline

import (
	"context"
	"fmt"

	"github.com/shouni/go-blog-exact/pkg/extract"
	"github.com/shouni/go-blog-exact/pkg/fetcher"
	"github.com/shouni/go-blog-exact/pkg/types"
	"github.com/shouni/go-blog-exact/pkg/writer"
)

// Config は一覧ページのスクレイピング1回分の設定を保持します。
type Config struct {
	BaseURL     string // 例: https://m.signalvnoise.com
	Page        int    // 0 以下の場合は1ページ目
	OutputPath  string // 出力ファイルのパス
	StripCommas bool   // 抽出値からカンマを除去する (互換モード)
}

// ScrapePosts は、一覧ページの取得 → 抽出 → ファイル書き込みを順に実行するメインの処理パイプラインです。
// 取得に失敗した場合は後続の処理を行わずにエラーを返します。
func ScrapePosts(ctx context.Context, f extract.Fetcher, cfg Config) ([]types.PostRecord, error) {
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("出力ファイルのパスが指定されていません")
	}

	// 1. Extractor を初期化 (DI)
	extractor, err := extract.NewExtractor(f, extract.WithStripCommas(cfg.StripCommas))
	if err != nil {
		return nil, fmt.Errorf("Extractorの初期化エラー: %w", err)
	}

	// 2. 取得と抽出の実行
	pageURL := fetcher.PageURL(cfg.BaseURL, cfg.Page)
	records, err := extractor.FetchAndExtract(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("記事メタデータの抽出エラー (URL: %s): %w", pageURL, err)
	}

	// 3. ファイルへの書き込み
	if err := writer.Write(cfg.OutputPath, records); err != nil {
		return nil, err
	}

	return records, nil
}
