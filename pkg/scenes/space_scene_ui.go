package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/systems"
	"github.com/decker502/galaxy/pkg/utils"
)

// 说明文字和调试信息的布局
const (
	captionMaxWidth = 240.0
	captionPadding  = 6.0
	captionGap      = 8.0
	hudLineHeight   = 15.0
	hudMargin       = 10.0
)

var (
	captionBackground = color.RGBA{R: 10, G: 5, B: 25, A: 200}
	captionTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hudTextColor      = color.RGBA{R: 0x64, G: 0xff, B: 0xda, A: 255}
)

func newHUDFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// drawCaption 在悬停的照片框下方显示说明文字
func (s *SpaceScene) drawCaption(screen *ebiten.Image) {
	if !s.settings.GetSettings().ShowCaptions || s.viewer.IsActive() {
		return
	}
	id := s.interaction.Hovered()
	if id == 0 {
		return
	}
	photo, ok := ecs.GetComponent[*components.PhotoFrameComponent](s.entityManager, id)
	if !ok || photo.Caption == "" {
		return
	}
	tr, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}
	obj, _ := ecs.GetComponent[*components.SceneObjectComponent](s.entityManager, id)

	sp := systems.ProjectPoint(tr.Position, obj.Visual.Size*tr.Scale/2, s.camera.View(), s.projection(), s.viewport())
	if !sp.Visible {
		return
	}

	lines := utils.WrapText(photo.Caption, s.hudFace, captionMaxWidth)
	width := 0.0
	for _, line := range lines {
		width = max(width, utils.MeasureTextWidth(line, s.hudFace))
	}
	boxW := width + 2*captionPadding
	boxH := float64(len(lines))*hudLineHeight + 2*captionPadding
	boxX := sp.X - boxW/2
	boxY := sp.Y + sp.Radius + captionGap

	vector.DrawFilledRect(screen, float32(boxX), float32(boxY), float32(boxW), float32(boxH), captionBackground, true)
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(boxX+captionPadding, boxY+captionPadding+float64(i)*hudLineHeight)
		op.ColorScale.ScaleWithColor(captionTextColor)
		text.Draw(screen, line, s.hudFace, op)
	}
}

// hudLines 调试信息
func (s *SpaceScene) hudLines() []string {
	cam := s.camera.State()
	return []string{
		fmt.Sprintf("step %d / %d", s.Step(), s.journey.MaxStep()),
		fmt.Sprintf("camera (%.2f, %.2f, %.2f)", cam.Position.X(), cam.Position.Y(), cam.Position.Z()),
		fmt.Sprintf("objects %d  frames %d", s.entityManager.EntityCount(), len(s.composer.PhotoFrames())),
		fmt.Sprintf("quality %.1f  t %.1fs  paused %v", s.composer.Quality(), s.clock.Elapsed(), s.clock.IsPaused()),
		fmt.Sprintf("fps %.0f", ebiten.ActualFPS()),
	}
}

// drawHUD 左上角显示调试信息（F3 切换）
func (s *SpaceScene) drawHUD(screen *ebiten.Image) {
	if !s.settings.GetSettings().ShowHUD {
		return
	}
	for i, line := range s.hudLines() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudMargin, hudMargin+float64(i)*hudLineHeight)
		op.ColorScale.ScaleWithColor(hudTextColor)
		text.Draw(screen, line, s.hudFace, op)
	}
}
