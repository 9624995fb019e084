package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if textStr == "" || face == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureTextWidth(textStr, face) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if MeasureTextWidth(candidate, face) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
		}
		// 单词太长，按字符拆开
		for MeasureTextWidth(word, face) > maxWidth {
			cut := splitAt(word, face, maxWidth)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}

// splitAt 返回 word 中能放进 maxWidth 的最长前缀的字节长度，至少一个字符
func splitAt(word string, face text.Face, maxWidth float64) int {
	cut := 0
	for i, r := range word {
		next := i + len(string(r))
		if cut > 0 && MeasureTextWidth(word[:next], face) > maxWidth {
			break
		}
		cut = next
	}
	return cut
}

// MeasureTextWidth 测量单行文本宽度
func MeasureTextWidth(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}
