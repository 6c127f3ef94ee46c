package preview

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/shouni/go-blog-exact/pkg/types"
)

// Render は records を表形式で w に出力します。records が空の場合は何も出力しません。
func Render(w io.Writer, records []types.PostRecord) {
	if len(records) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(toRow(types.FieldNames()))
	for _, r := range records {
		t.AppendRow(toRow(r.Values()))
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
