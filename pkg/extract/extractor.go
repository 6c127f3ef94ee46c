package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shouni/go-blog-exact/pkg/types"
)

// ----------------------------------------------------------------------
// 定数定義 (一覧ページの構造)
// ----------------------------------------------------------------------
const (
	headerTag   = "header"
	headerClass = "entry-header grid__item grid__item--large"

	titleTag   = "h2"
	titleClass = "entry-title entry-title--list centered"

	bylineTag   = "span"
	bylineClass = "byline"

	dateTag   = "time"
	dateClass = "entry-date published updated"

	avatarTag   = "div"
	avatarClass = "entry-meta__avatars"
)

// Extractor は、一覧ページのドキュメントから記事ごとの PostRecord を抽出します。
type Extractor struct {
	fetcher     Fetcher
	stripCommas bool
}

// Option は Extractor の設定を行うための関数型です。
type Option func(*Extractor)

// WithStripCommas は、抽出した値からカンマを取り除くかどうかを設定します。
// Writer がクォートを行うため通常は不要です。区切り文字を素朴に連結する出力との互換用です。
func WithStripCommas(strip bool) Option {
	return func(e *Extractor) {
		e.stripCommas = strip
	}
}

// NewExtractor は、新しいExtractorのインスタンスを生成します。
func NewExtractor(fetcher Fetcher, options ...Option) (*Extractor, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("extract.NewExtractor: Fetcher cannot be nil")
	}
	e := &Extractor{fetcher: fetcher}
	for _, opt := range options {
		opt(e)
	}
	return e, nil
}

// FetchAndExtract は指定されたURLの一覧ページを取得し、記事のメタデータを抽出します。
func (e *Extractor) FetchAndExtract(ctx context.Context, url string) ([]types.PostRecord, error) {
	// 1. Fetcherからドキュメントを取得 (通信の責務)
	doc, err := e.fetcher.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	// 2. ヘッダーブロックごとに抽出 (解析の責務)
	return e.Extract(doc)
}

// Extract はドキュメント内のすべてのヘッダーブロックから PostRecord をページ順に抽出します。
// いずれかのブロックでフィールドが見つからない場合、*MissingFieldError を返して中断します。
func (e *Extractor) Extract(doc *goquery.Document) ([]types.PostRecord, error) {
	if doc == nil {
		return nil, fmt.Errorf("ドキュメントがnilです")
	}

	blocks := FindAll(doc.Selection, headerTag, headerClass)
	records := make([]types.PostRecord, 0, len(blocks))
	for i, block := range blocks {
		record, err := e.extractBlock(i, block)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// extractBlock はヘッダーブロック1件から6つのフィールドを取り出します。
func (e *Extractor) extractBlock(index int, block *goquery.Selection) (types.PostRecord, error) {
	missing := func(field, selector string) error {
		return &MissingFieldError{Block: index, Field: field, Selector: selector}
	}

	// タイトルと記事URL
	h2, ok := FindFirst(block, titleTag, titleClass)
	if !ok {
		return types.PostRecord{}, missing(types.FieldTitle, Selector(titleTag, titleClass))
	}
	title, ok := Text(h2)
	if !ok {
		return types.PostRecord{}, missing(types.FieldTitle, Selector(titleTag, titleClass))
	}
	titleLink, ok := FindFirst(h2, "a", "")
	if !ok {
		return types.PostRecord{}, missing(types.FieldBlogURL, Selector(titleTag, titleClass)+" a")
	}
	blogURL, ok := Attr(titleLink, "href")
	if !ok {
		return types.PostRecord{}, missing(types.FieldBlogURL, Selector(titleTag, titleClass)+" a[href]")
	}

	// 著者名と著者URL
	byline, ok := FindFirst(block, bylineTag, bylineClass)
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorName, Selector(bylineTag, bylineClass))
	}
	authorLink, ok := FindFirst(byline, "a", "")
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorName, Selector(bylineTag, bylineClass)+" a")
	}
	author, ok := Text(authorLink)
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorName, Selector(bylineTag, bylineClass)+" a")
	}
	authorURL, ok := Attr(authorLink, "href")
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorURL, Selector(bylineTag, bylineClass)+" a[href]")
	}

	// 公開日
	timeTag, ok := FindFirst(block, dateTag, dateClass)
	if !ok {
		return types.PostRecord{}, missing(types.FieldPublishedDate, Selector(dateTag, dateClass))
	}
	published, ok := Text(timeTag)
	if !ok {
		return types.PostRecord{}, missing(types.FieldPublishedDate, Selector(dateTag, dateClass))
	}

	// 著者アバター画像
	avatars, ok := FindFirst(block, avatarTag, avatarClass)
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorImageURL, Selector(avatarTag, avatarClass))
	}
	img, ok := FindFirst(avatars, "img", "")
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorImageURL, Selector(avatarTag, avatarClass)+" img")
	}
	imageURL, ok := Attr(img, "src")
	if !ok {
		return types.PostRecord{}, missing(types.FieldAuthorImageURL, Selector(avatarTag, avatarClass)+" img[src]")
	}

	return types.PostRecord{
		AuthorName:     e.clean(author),
		Title:          e.clean(title),
		PublishedDate:  e.clean(published),
		BlogURL:        e.clean(blogURL),
		AuthorURL:      e.clean(authorURL),
		AuthorImageURL: e.clean(imageURL),
	}, nil
}

// clean はオプションに応じてカンマを除去します。
func (e *Extractor) clean(value string) string {
	if !e.stripCommas {
		return value
	}
	return strings.ReplaceAll(value, ",", "")
}
