package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/shouni/go-blog-exact/pkg/types"
)

const (
	// DefaultDelimiter は、フィールドの区切り文字です。
	DefaultDelimiter = ','

	fileMode = 0o644
)

type config struct {
	delimiter rune
}

// Option は Writer の設定を行うための関数型です。
type Option func(*config)

// WithDelimiter は区切り文字を設定します。
func WithDelimiter(d rune) Option {
	return func(c *config) {
		c.delimiter = d
	}
}

func newConfig(options []Option) config {
	c := config{delimiter: DefaultDelimiter}
	for _, opt := range options {
		opt(&c)
	}
	return c
}

// Encode は records をヘッダー行付きの区切りテキストとして w に書き込みます。
// records が空の場合は何も書き込みません。
// 区切り文字・ダブルクォート・改行を含むフィールドのみクォートされ、
// それ以外のフィールドはそのまま出力されます。
func Encode(w io.Writer, records []types.PostRecord, options ...Option) error {
	if len(records) == 0 {
		return nil
	}
	cfg := newConfig(options)

	cw := csv.NewWriter(w)
	cw.Comma = cfg.delimiter

	if err := cw.Write(types.FieldNames()); err != nil {
		return fmt.Errorf("ヘッダー行の書き込みに失敗しました: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("%d 件目のレコードの書き込みに失敗しました: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("出力のフラッシュに失敗しました: %w", err)
	}
	return nil
}

// Write は records を path に書き込みます。
// records が空の場合は、0バイトのファイルを作成 (既存ファイルは切り詰め) して終了します。
func Write(path string, records []types.PostRecord, options ...Option) error {
	var buf bytes.Buffer
	if err := Encode(&buf, records, options...); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), fileMode); err != nil {
		return fmt.Errorf("ファイルの書き込みに失敗しました (パス: %s): %w", path, err)
	}
	return nil
}
