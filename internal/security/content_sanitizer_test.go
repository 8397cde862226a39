package security

import (
	"strings"
	"testing"
)

// TestSanitizeStory_AllowedTags は許可タグが正しく通過することを検証する。
func TestSanitizeStory_AllowedTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		// want に含まれるべき部分文字列
		wantContains []string
	}{
		{
			name:         "pタグが許可される",
			input:        "<p>物語の冒頭</p>",
			wantContains: []string{"<p>物語の冒頭</p>"},
		},
		{
			name:         "brタグが許可される",
			input:        "行1<br>行2",
			wantContains: []string{"<br>", "行1", "行2"},
		},
		{
			name:         "blockquoteタグが許可される",
			input:        "<blockquote>引用テキスト</blockquote>",
			wantContains: []string{"<blockquote>引用テキスト</blockquote>"},
		},
		{
			name:         "preタグとcodeタグが許可される",
			input:        "<pre><code>呪文の一節</code></pre>",
			wantContains: []string{"<pre>", "<code>", "呪文の一節", "</code>", "</pre>"},
		},
		{
			name:         "strongタグとemタグが許可される",
			input:        "<strong>太字</strong>と<em>強調</em>",
			wantContains: []string{"<strong>太字</strong>", "<em>強調</em>"},
		},
		{
			name:         "ulタグとliタグが許可される",
			input:        "<ul><li>章1</li><li>章2</li></ul>",
			wantContains: []string{"<ul>", "<li>", "章1", "章2", "</li>", "</ul>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.SanitizeStory(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("SanitizeStory(%q) = %q, expected to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

// TestSanitizeStory_DangerousTags は危険なタグと属性が除去されることを検証する。
func TestSanitizeStory_DangerousTags(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		// got に含まれてはならない部分文字列
		wantNotContains []string
	}{
		{
			name:            "scriptタグが除去される",
			input:           `<p>本文</p><script>alert("xss")</script>`,
			wantNotContains: []string{"<script", "alert"},
		},
		{
			name:            "iframeタグが除去される",
			input:           `<iframe src="https://evil.example.com"></iframe>`,
			wantNotContains: []string{"<iframe", "evil.example.com"},
		},
		{
			name:            "styleタグが除去される",
			input:           `<style>body { display: none; }</style><p>本文</p>`,
			wantNotContains: []string{"<style", "display"},
		},
		{
			name:            "onclickイベント属性が除去される",
			input:           `<p onclick="steal()">本文</p>`,
			wantNotContains: []string{"onclick", "steal"},
		},
		{
			name:            "imgタグが除去される",
			input:           `<p>本文</p><img src="https://example.com/a.png">`,
			wantNotContains: []string{"<img"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizer.SanitizeStory(tt.input)
			for _, notWant := range tt.wantNotContains {
				if strings.Contains(got, notWant) {
					t.Errorf("SanitizeStory(%q) = %q, expected not to contain %q", tt.input, got, notWant)
				}
			}
		})
	}
}

// TestSanitizeStory_Idempotent は同一入力に対して常に同一出力を返すことを検証する。
func TestSanitizeStory_Idempotent(t *testing.T) {
	sanitizer := NewContentSanitizer()

	input := `<p>本文</p><script>alert(1)</script><strong>太字</strong>`
	first := sanitizer.SanitizeStory(input)
	second := sanitizer.SanitizeStory(first)

	if first != second {
		t.Errorf("SanitizeStory is not idempotent: first = %q, second = %q", first, second)
	}
}

// TestSanitizePlain はプレーンテキスト項目から全タグが除去されることを検証する。
func TestSanitizePlain(t *testing.T) {
	sanitizer := NewContentSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"タグなしはそのまま", "短編を書いています", "短編を書いています"},
		{"書式タグも除去される", "<strong>自己紹介</strong>", "自己紹介"},
		{"scriptタグが除去される", `コメント<script>alert(1)</script>`, "コメント"},
		{"前後の空白が除去される", "  余白あり  ", "余白あり"},
		{"空文字列は空文字列", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizer.SanitizePlain(tt.input); got != tt.want {
				t.Errorf("SanitizePlain(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
