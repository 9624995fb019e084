package modules

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/galaxy/pkg/utils"
)

// 界面配色
var (
	panelFill      = color.RGBA{R: 12, G: 8, B: 28, A: 220}
	panelBorder    = color.RGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 255}
	titleColor     = color.RGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 255}
	bodyColor      = color.RGBA{R: 235, G: 230, B: 245, A: 255}
	buttonFill     = color.RGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 200}
	buttonText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	overlayColor   = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	shadowColor    = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	placeholderBox = color.RGBA{R: 60, G: 50, B: 80, A: 255}
)

// 界面尺寸
const (
	panelPadding    = 16.0
	lineHeight      = 16.0
	borderWidth     = 2.0
	buttonWidth     = 120.0
	buttonHeight    = 32.0
	textShadowShift = 1.0
)

// newFace 返回界面使用的字体
// 使用 x/image 自带的位图字体，不依赖外部字体文件
func newFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// rect 屏幕上的矩形区域
type rect struct {
	X, Y, W, H float64
}

// Contains 判断点是否在矩形内
func (r rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= r.X && fx < r.X+r.W && fy >= r.Y && fy < r.Y+r.H
}

// drawPanel 绘制带边框的半透明面板
func drawPanel(screen *ebiten.Image, r rect, fill, border color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), fill, true)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), borderWidth, border, true)
}

// drawText 绘制带阴影的单行文字，(x, y) 是左上角
func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+textShadowShift, y+textShadowShift)
	shadowOp.ColorScale.ScaleWithColor(shadowColor)
	_, _, _, a := clr.RGBA()
	shadowOp.ColorScale.ScaleAlpha(float32(a) / 0xffff)
	text.Draw(screen, s, face, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

// drawCenteredText 在矩形内水平居中绘制文字
func drawCenteredText(screen *ebiten.Image, s string, face text.Face, r rect, clr color.Color) {
	w := utils.MeasureTextWidth(s, face)
	drawText(screen, s, face, r.X+(r.W-w)/2, r.Y+(r.H-lineHeight)/2+2, clr)
}

// drawButton 绘制按钮
func drawButton(screen *ebiten.Image, r rect, label string, face text.Face, alpha float64) {
	drawPanel(screen, r, fade(buttonFill, alpha), fade(buttonText, alpha))
	drawCenteredText(screen, label, face, r, fade(buttonText, alpha))
}

// fade 按 alpha 缩放颜色（color.RGBA 是预乘 alpha）
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
