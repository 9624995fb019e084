package utils

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// TestWrapText 测试文本换行功能
// basicfont 每个字符宽 7 像素
func TestWrapText(t *testing.T) {
	face := text.NewGoXFace(basicfont.Face7x13)

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{
			name:     "短文本不换行",
			input:    "hello",
			maxWidth: 1000,
			want:     []string{"hello"},
		},
		{
			name:     "按单词换行",
			input:    "hello world foo",
			maxWidth: 7 * 11,
			want:     []string{"hello world", "foo"},
		},
		{
			name:     "超长单词强制断行",
			input:    "abcdefghij",
			maxWidth: 7 * 4,
			want:     []string{"abcd", "efgh", "ij"},
		},
		{
			name:     "空文本",
			input:    "",
			maxWidth: 100,
			want:     []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, face, tt.maxWidth)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("WrapText(%q, %v) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestMeasureTextWidth(t *testing.T) {
	face := text.NewGoXFace(basicfont.Face7x13)

	if got := MeasureTextWidth("abc", face); got != 21 {
		t.Errorf("MeasureTextWidth(abc) = %v, want 21", got)
	}
	if got := MeasureTextWidth("", face); got != 0 {
		t.Errorf("MeasureTextWidth(\"\") = %v, want 0", got)
	}
	if got := MeasureTextWidth("abc", nil); got != 0 {
		t.Errorf("MeasureTextWidth with nil face = %v, want 0", got)
	}
}
