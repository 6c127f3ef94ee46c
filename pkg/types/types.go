package types

// 出力ファイルのヘッダー行に使用するフィールド名です。
// 並び順がそのまま列の順序になります。
const (
	FieldAuthorName     = "author name"
	FieldTitle          = "title"
	FieldPublishedDate  = "published_date"
	FieldBlogURL        = "blog url"
	FieldAuthorURL      = "author url"
	FieldAuthorImageURL = "author image url"
)

// PostRecord は、一覧ページのヘッダーブロック1件から抽出した記事のメタデータを保持します。
// これは、Extractorの出力、Writerの入力として利用されます。
type PostRecord struct {
	AuthorName     string // 著者名
	Title          string // 記事タイトル
	PublishedDate  string // 公開日 (ページ上の表記のまま)
	BlogURL        string // 記事のURL
	AuthorURL      string // 著者ページのURL
	AuthorImageURL string // 著者アバター画像のURL
}

// FieldNames はスキーマ順のフィールド名を返します。
func FieldNames() []string {
	return []string{
		FieldAuthorName,
		FieldTitle,
		FieldPublishedDate,
		FieldBlogURL,
		FieldAuthorURL,
		FieldAuthorImageURL,
	}
}

// Values は FieldNames と同じ順序でフィールド値を返します。
func (r PostRecord) Values() []string {
	return []string{
		r.AuthorName,
		r.Title,
		r.PublishedDate,
		r.BlogURL,
		r.AuthorURL,
		r.AuthorImageURL,
	}
}

// Map はフィールド名をキーとするマップを返します。
func (r PostRecord) Map() map[string]string {
	names := FieldNames()
	values := r.Values()
	m := make(map[string]string, len(names))
	for i, name := range names {
		m[name] = values[i]
	}
	return m
}
