package cmd

import (
	"context"
	"log"
	"time"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"

	"github.com/shouni/go-blog-exact/pkg/fetcher"
)

// --- グローバル定数 ---

const (
	appName           = "blog-exact"
	defaultTimeoutSec = 10 // 秒

	// 全体処理のタイムアウトはクライアントタイムアウトのこの倍数とします (scrapeCmd, feedCmd で利用)
	overallTimeoutFactor = 2
)

// --- グローバル変数とフラグ構造体 ---

// AppFlags はこのアプリケーション固有の永続フラグを保持
type AppFlags struct {
	TimeoutSec int // --timeout タイムアウト (0 でタイムアウトなし)
}

var Flags AppFlags                // アプリケーション固有フラグにアクセスするためのグローバル変数
var globalFetcher *fetcher.Client // scrape と feed で共有する HTTP クライアント

// --- 初期化とロジック (clibaseへのコールバックとして利用) ---

// addAppPersistentFlags は、アプリケーション固有の永続フラグをルートコマンドに追加します。
func addAppPersistentFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().IntVar(
		&Flags.TimeoutSec,
		"timeout",
		defaultTimeoutSec,
		"HTTPリクエストのタイムアウト時間（秒）。0 でタイムアウトなし",
	)
}

// initAppPreRunE は、clibase共通処理の後に実行される、アプリケーション固有のPersistentPreRunEです。
// NOTE: clibaseの PersistentPreRunE チェーンにより、clibase.Flags.Verbose はこの関数実行前に設定済み
func initAppPreRunE(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(Flags.TimeoutSec) * time.Second

	if clibase.Flags.Verbose {
		log.Printf("HTTPクライアントのタイムアウトを設定しました (Timeout: %s)。", timeout)
	}

	globalFetcher = fetcher.New(timeout)
	return nil
}

// GetGlobalFetcher は、初期化されたフェッチャーを返す関数 (DIの代わり)
func GetGlobalFetcher() *fetcher.Client {
	return globalFetcher
}

// overallContext は、クライアントタイムアウトから全体処理のコンテキストを生成します。
// --timeout 0 の場合は期限を設定しません。
func overallContext() (context.Context, context.CancelFunc) {
	if Flags.TimeoutSec <= 0 {
		return context.WithCancel(context.Background())
	}
	overallTimeout := time.Duration(Flags.TimeoutSec*overallTimeoutFactor) * time.Second
	return context.WithTimeout(context.Background(), overallTimeout)
}

// --- エントリポイント ---

// Execute は、clibase を使用してルートコマンドを構築・実行します。
func Execute() {
	clibase.Execute(
		appName,
		addAppPersistentFlags,
		initAppPreRunE,
		scrapeCmd,
		feedCmd,
	)
	// clibase.Execute() の中で os.Exit(1) が処理されるため、ここでは不要
}
