package main

import "github.com/shouni/go-blog-exact/cmd"

// main は cmd.Execute を呼び出します。エラー時の終了処理は clibase が一元的に行います。
func main() {
	cmd.Execute()
}
