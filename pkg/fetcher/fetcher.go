package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultHTTPTimeout は、デフォルトのHTTPタイムアウトです。
	DefaultHTTPTimeout = 10 * time.Second

	// サイトからのブロックを避けるためのUser-Agent
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:66.0) Gecko/20100101 Firefox/66.0"
)

// DefaultHeaders は、すべてのリクエストに付与する固定のヘッダーセットです。
var DefaultHeaders = map[string]string{
	"User-Agent":                UserAgent,
	"Accept-Encoding":           "gzip, deflate",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"DNT":                       "1",
	"Connection":                "close",
	"Upgrade-Insecure-Requests": "1",
}

// StatusError は、HTTP 200 以外のステータスコードが返されたことを示すエラー型です。
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Webページの取得に失敗しました (URL: %s): ステータスコード %d", e.URL, e.StatusCode)
}

// Client は、一覧ページを1回のGETリクエストで取得します。リトライは行いません。
type Client struct {
	http *resty.Client
}

// Option は Client の設定を行うための関数型です。
type Option func(*Client)

// WithHeader は固定ヘッダーセットに対してヘッダーを追加または上書きします。
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.http.SetHeader(key, value)
	}
}

// WithTransport はカスタムの http.RoundTripper を設定します。
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.SetTransport(rt)
	}
}

// New は新しい Client を生成します。
// timeout が 0 以下の場合、クライアント側のタイムアウトは設定されません。
func New(timeout time.Duration, options ...Option) *Client {
	r := resty.New()
	r.SetHeaders(DefaultHeaders)
	if timeout > 0 {
		r.SetTimeout(timeout)
	}

	c := &Client{http: r}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// PageURL は、ベースURLとページ番号から取得対象のURLを組み立てます。
// page が 0 以下の場合はベースURL (1ページ目) を返します。
func PageURL(baseURL string, page int) string {
	base := strings.TrimRight(baseURL, "/")
	if page <= 0 {
		return base
	}
	return base + "/page/" + strconv.Itoa(page)
}

// FetchRaw は URL に対して1回だけGETリクエストを行い、文字コードを変換せずにボディを返します。
// XML宣言の encoding を自身で解釈するフィード等はこちらを利用します。
func (c *Client) FetchRaw(ctx context.Context, url string) ([]byte, error) {
	body, _, err := c.get(ctx, url)
	return body, err
}

// FetchBytes は URL に対して1回だけGETリクエストを行い、UTF-8に変換したボディを返します。
func (c *Client) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	raw, contentType, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	body, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの文字コード変換に失敗しました (URL: %s): %w", url, err)
	}
	return body, nil
}

// get は1回のGETリクエストを実行し、200以外のステータスを StatusError として返します。
func (c *Client) get(ctx context.Context, url string) (body []byte, contentType string, err error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("HTTPリクエストに失敗しました (ネットワーク/接続エラー): %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, "", &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

// FetchDocument はURLからHTMLを取得し、goquery.Documentを返します。
func (c *Client) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.FetchBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTML解析に失敗しました: %w", err)
	}
	return doc, nil
}

// decodeBody は Content-Type とメタタグから文字コードを判定し、UTF-8 に変換します。
func decodeBody(body []byte, contentType string) ([]byte, error) {
	if len(body) == 0 {
		return body, nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
