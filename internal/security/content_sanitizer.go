// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はユーザーが投稿するストーリー本文・コメント・
// プロフィール文をサニタイズし、XSS攻撃などのセキュリティリスクから
// 読者を保護する。bluemondayライブラリを使用した許可リストベースの
// ポリシーで、安全なタグのみを通過させる。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は投稿コンテンツのサニタイズ機能のインターフェースを定義する。
// ストーリー・コメント・プロフィール文の保存前に使用される。
type ContentSanitizerService interface {
	// SanitizeStory はストーリー本文をサニタイズして安全なHTMLを返す。
	// 段落・強調・引用などの書式タグのみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeStory(raw string) string

	// SanitizePlain はコメント・プロフィール文・タイトルなどの
	// プレーンテキスト項目からすべてのHTMLタグを除去する。
	SanitizePlain(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	storyPolicy *bluemonday.Policy
	plainPolicy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// 初期化時にbluemondayのポリシーを2種類構築する。
//   - ストーリー用: p, br, ul, ol, li, blockquote, pre, code, strong, em を許可
//   - プレーンテキスト用: 全タグを除去（StrictPolicy）
//
// script, iframe, style等は許可リストに含めないことで自動的に除去され、
// on*イベント属性はbluemondayのデフォルトで許可されない。
func NewContentSanitizer() *contentSanitizer {
	story := bluemonday.NewPolicy()
	story.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "pre", "code",
		"strong", "em",
	)

	return &contentSanitizer{
		storyPolicy: story,
		plainPolicy: bluemonday.StrictPolicy(),
	}
}

// SanitizeStory はストーリー本文をサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) SanitizeStory(raw string) string {
	return s.storyPolicy.Sanitize(raw)
}

// SanitizePlain はプレーンテキスト項目から全タグを除去し、前後の空白を取り除く。
func (s *contentSanitizer) SanitizePlain(raw string) string {
	return strings.TrimSpace(s.plainPolicy.Sanitize(raw))
}
