package preview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/go-blog-exact/pkg/types"
)

func TestRender(t *testing.T) {
	t.Run("レコードを表として出力する", func(t *testing.T) {
		var buf bytes.Buffer
		Render(&buf, []types.PostRecord{{
			AuthorName:     "Jane",
			Title:          "Hello World",
			PublishedDate:  "2021-01-01",
			BlogURL:        "https://x/1",
			AuthorURL:      "https://x/a",
			AuthorImageURL: "https://x/i.png",
		}})

		out := buf.String()
		for _, v := range []string{"Jane", "Hello World", "2021-01-01", "https://x/1", "https://x/a", "https://x/i.png"} {
			assert.Contains(t, out, v)
		}
		assert.Contains(t, strings.ToLower(out), "author image url")
	})

	t.Run("空の場合は何も出力しない", func(t *testing.T) {
		var buf bytes.Buffer
		Render(&buf, nil)
		assert.Zero(t, buf.Len())
	})
}
