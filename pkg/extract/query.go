package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	textUtils "github.com/shouni/go-utils/text"
)

// ----------------------------------------------------------------------
// ドキュメントツリーに対する型付きクエリ
// 各関数は見つからなかった場合に ok=false を返し、呼び出し側が明示的に判断します。
// ----------------------------------------------------------------------

// Selector はタグ名とスペース区切りのクラス名から CSS セレクターを組み立てます。
// 例: ("h2", "entry-title centered") -> "h2.entry-title.centered"
func Selector(tag, class string) string {
	classes := strings.Fields(class)
	if len(classes) == 0 {
		return tag
	}
	return tag + "." + strings.Join(classes, ".")
}

// FindFirst は s の子孫から、タグとすべてのクラスに一致する最初の要素を返します。
func FindFirst(s *goquery.Selection, tag, class string) (*goquery.Selection, bool) {
	if s == nil {
		return nil, false
	}
	found := s.Find(Selector(tag, class)).First()
	if found.Length() == 0 {
		return nil, false
	}
	return found, true
}

// FindAll は s の子孫から一致する要素をドキュメント順にすべて返します。
func FindAll(s *goquery.Selection, tag, class string) []*goquery.Selection {
	if s == nil {
		return nil
	}
	var result []*goquery.Selection
	s.Find(Selector(tag, class)).Each(func(i int, item *goquery.Selection) {
		result = append(result, item)
	})
	return result
}

// Attr は要素の属性値を返します。属性が存在しない場合は ok=false です。
func Attr(s *goquery.Selection, name string) (string, bool) {
	if s == nil || s.Length() == 0 {
		return "", false
	}
	return s.Attr(name)
}

// Text は要素のテキストを空白を正規化して返します。
// 要素が存在すれば、テキストが空でも ok=true です。
func Text(s *goquery.Selection) (string, bool) {
	if s == nil || s.Length() == 0 {
		return "", false
	}
	return textUtils.NormalizeText(s.Text()), true
}
