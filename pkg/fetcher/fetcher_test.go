package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		page     int
		expected string
	}{
		{"1ページ目", "https://m.signalvnoise.com", 0, "https://m.signalvnoise.com"},
		{"負のページ番号", "https://m.signalvnoise.com", -1, "https://m.signalvnoise.com"},
		{"ページ指定", "https://m.signalvnoise.com", 3, "https://m.signalvnoise.com/page/3"},
		{"末尾スラッシュ", "https://m.signalvnoise.com/", 2, "https://m.signalvnoise.com/page/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageURL(tt.baseURL, tt.page))
		})
	}
}

func TestFetchBytes(t *testing.T) {
	t.Run("固定ヘッダーを付与して取得する", func(t *testing.T) {
		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		}))
		defer server.Close()

		client := New(5 * time.Second)
		body, err := client.FetchBytes(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>ok</body></html>", string(body))

		assert.Equal(t, UserAgent, got.Get("User-Agent"))
		assert.Equal(t, "gzip, deflate", got.Get("Accept-Encoding"))
		assert.Equal(t, "1", got.Get("DNT"))
		assert.Equal(t, "1", got.Get("Upgrade-Insecure-Requests"))
		assert.Contains(t, got.Get("Accept"), "text/html")
	})

	t.Run("200以外はStatusErrorを返しリトライしない", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := New(5 * time.Second)
		body, err := client.FetchBytes(context.Background(), server.URL+"/page/9")
		assert.Nil(t, body)
		require.Error(t, err)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
		assert.Equal(t, server.URL+"/page/9", statusErr.URL)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Shift_JISのボディをUTF-8に変換する", func(t *testing.T) {
		// "テスト" の Shift_JIS 表現
		sjis := []byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=Shift_JIS")
			_, _ = w.Write(sjis)
		}))
		defer server.Close()

		body, err := New(5*time.Second).FetchBytes(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "テスト", string(body))
	})

	t.Run("追加ヘッダーで上書きできる", func(t *testing.T) {
		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		client := New(5*time.Second, WithHeader("User-Agent", "test-agent"))
		_, err := client.FetchBytes(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", ua)
	})

	t.Run("キャンセル済みのコンテキスト", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := New(0).FetchBytes(ctx, server.URL)
		assert.Error(t, err)
	})
}

func TestFetchRaw(t *testing.T) {
	latin1 := []byte{'C', 'a', 'f', 0xE9}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=ISO-8859-1")
		_, _ = w.Write(latin1)
	}))
	defer server.Close()

	client := New(5 * time.Second)

	raw, err := client.FetchRaw(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, latin1, raw, "FetchRaw は文字コードを変換しない")

	decoded, err := client.FetchBytes(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Café", string(decoded))
}

func TestFetchRaw_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(5*time.Second).FetchRaw(context.Background(), server.URL)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetchDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Listing</title></head><body></body></html>`))
	}))
	defer server.Close()

	doc, err := New(5*time.Second).FetchDocument(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Listing", doc.Find("title").Text())
}

func TestStatusError_Error(t *testing.T) {
	err := &StatusError{URL: "https://example.com/page/2", StatusCode: 404}
	assert.Equal(t, "Webページの取得に失敗しました (URL: https://example.com/page/2): ステータスコード 404", err.Error())
}
