package cmd

import (
	"errors"
	"fmt"
	"net/url"
)

// URL 入力の検証で返すエラーです。errors.Is で判定できます。
var (
	ErrEmptyURL          = errors.New("URLが指定されていません")
	ErrInvalidURL        = errors.New("URLのパースエラー")
	ErrUnsupportedScheme = errors.New("無効なURLスキームです。httpまたはhttpsを指定してください")
)

// defaultScheme は、スキームなしで入力されたURLに付与するスキームです。
const defaultScheme = "https"

// ensureScheme は、ベースURLやフィードURLを取得可能な形に正規化します。
// スキームがなければ https:// を付与し、http/https 以外のスキームは拒否します。
func ensureScheme(rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrEmptyURL
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	switch parsedURL.Scheme {
	case "":
		return defaultScheme + "://" + rawURL, nil
	case "http", "https":
		return rawURL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, rawURL)
	}
}
