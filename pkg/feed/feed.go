package feed

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/shouni/go-blog-exact/pkg/types"
)

// publishedLayout は、パース済みの公開日を出力する際の書式です。
const publishedLayout = "2006-01-02"

// Fetcher は Parser が依存するインターフェースです。*fetcher.Client がこれを満たします。
// 文字コードは gofeed が XML 宣言から判定するため、変換前のボディを受け取ります。
type Fetcher interface {
	FetchRaw(ctx context.Context, url string) ([]byte, error)
}

// Parser は RSS/Atom フィードを取得してパースします。
type Parser struct {
	client Fetcher
}

// NewParser は新しい Parser インスタンスを初期化し、依存関係を注入します。
func NewParser(client Fetcher) *Parser {
	return &Parser{client: client}
}

// FetchAndParse は指定されたURLからフィードを取得し、パースします。
func (p *Parser) FetchAndParse(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	body, err := p.client.FetchRaw(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("フィードの取得失敗 (URL: %s): %w", feedURL, err)
	}

	fp := gofeed.NewParser()
	feed, parseErr := fp.Parse(bytes.NewReader(body))
	if parseErr != nil {
		return nil, fmt.Errorf("RSSフィードのパース失敗 (URL: %s): %w", feedURL, parseErr)
	}
	return feed, nil
}

// Records はフィードのアイテムを PostRecord に変換します。
// フィードには著者ページのURLが含まれないため、AuthorURL は常に空です。
func Records(feed *gofeed.Feed) []types.PostRecord {
	if feed == nil || len(feed.Items) == 0 {
		return []types.PostRecord{}
	}

	records := make([]types.PostRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		records = append(records, types.PostRecord{
			AuthorName:     authorName(item),
			Title:          item.Title,
			PublishedDate:  published(item),
			BlogURL:        item.Link,
			AuthorImageURL: imageURL(item),
		})
	}
	return records
}

func authorName(item *gofeed.Item) string {
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	return ""
}

func published(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(publishedLayout)
	}
	return item.Published
}

func imageURL(item *gofeed.Item) string {
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}
