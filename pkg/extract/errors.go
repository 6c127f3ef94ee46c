package extract

import "fmt"

// MissingFieldError は、ヘッダーブロック内でフィールドに対応する要素または属性が
// 見つからなかったことを示します。ページ構造が変わると、このエラーで抽出全体が中断されます。
type MissingFieldError struct {
	Block    int    // 0 始まりのヘッダーブロック番号
	Field    string // types.Field* のフィールド名
	Selector string // 参照したセレクター (属性の場合は "a[href]" の形式)
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ヘッダーブロック %d でフィールド %q が見つかりません (セレクター: %s)", e.Block, e.Field, e.Selector)
}
