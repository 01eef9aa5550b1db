package analysis

import (
	"strings"
)

const fenceMarker = "```"

// Sanitize 移除模型輸出外層的 markdown code fence，並修剪前後空白。
// 對已經乾淨的文字是冪等的。
func Sanitize(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, fenceMarker) {
		return text
	}

	lines := strings.Split(text, "\n")

	// 丟棄開頭的 fence 行（連同可選的語言標籤，例如 ```json）
	if strings.HasPrefix(strings.TrimSpace(lines[0]), fenceMarker) {
		lines = lines[1:]
	}

	// 丟棄結尾的 fence 行
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), fenceMarker) {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
