package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureState 纹理加载状态
type TextureState int

const (
	// TexturePending 正在后台加载，渲染占位
	TexturePending TextureState = iota
	// TextureReady 已解码
	TextureReady
	// TextureFailed 加载失败，永久使用占位
	TextureFailed
)

// TextureComponent 对象的纹理
// 未就绪时渲染占位外观（纯色 + 边框）
type TextureComponent struct {
	Ref   string
	State TextureState

	// Source 后台解码得到的图像
	Source image.Image

	// Image 渲染时按需从 Source 创建的 GPU 图像
	Image *ebiten.Image
}

// IsReady 纹理是否可用
func (t *TextureComponent) IsReady() bool {
	return t.State == TextureReady && t.Source != nil
}
