package components

import "image/color"

// HoverHighlightComponent 悬停高亮组件
// 每个对象只持有自己的悬停标记，离开时必须复位
//
// 使用场景：照片框悬停时放大、变亮、高亮边框并显示说明文字
type HoverHighlightComponent struct {
	// IsActive 指针是否停留在对象上
	IsActive bool

	NormalScale   float64
	HoverScale    float64
	NormalOpacity float64
	HoverOpacity  float64

	RingColor      color.RGBA
	HoverRingColor color.RGBA
}

// Scale 当前应使用的缩放
func (h *HoverHighlightComponent) Scale() float64 {
	if h.IsActive {
		return h.HoverScale
	}
	return h.NormalScale
}

// Opacity 当前应使用的不透明度
func (h *HoverHighlightComponent) Opacity() float64 {
	if h.IsActive {
		return h.HoverOpacity
	}
	return h.NormalOpacity
}

// Ring 当前边框颜色
func (h *HoverHighlightComponent) Ring() color.RGBA {
	if h.IsActive {
		return h.HoverRingColor
	}
	return h.RingColor
}
