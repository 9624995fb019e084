package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/galaxy/pkg/systems"
	"github.com/decker502/galaxy/pkg/utils"
)

// qualityStep 每次按键调整的画质幅度
const qualityStep = 0.1

// sceneAction 键盘触发的场景动作
type sceneAction int

const (
	actionNext sceneAction = iota
	actionPrev
	actionReset
	actionClose
	actionToggleCard
	actionToggleHUD
	actionToggleCaptions
	actionQualityUp
	actionQualityDown
	actionTogglePause
)

// keyBindings 按键 → 动作
var keyBindings = []struct {
	keys   []ebiten.Key
	action sceneAction
}{
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeySpace, ebiten.KeyEnter}, actionNext},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyBackspace}, actionPrev},
	{[]ebiten.Key{ebiten.KeyHome, ebiten.KeyR}, actionReset},
	{[]ebiten.Key{ebiten.KeyEscape}, actionClose},
	{[]ebiten.Key{ebiten.KeyTab}, actionToggleCard},
	{[]ebiten.Key{ebiten.KeyF3}, actionToggleHUD},
	{[]ebiten.Key{ebiten.KeyC}, actionToggleCaptions},
	{[]ebiten.Key{ebiten.KeyBracketRight}, actionQualityUp},
	{[]ebiten.Key{ebiten.KeyBracketLeft}, actionQualityDown},
	{[]ebiten.Key{ebiten.KeyP}, actionTogglePause},
}

// pollActions 返回本帧按下的动作
func pollActions() []sceneAction {
	var actions []sceneAction
	for _, b := range keyBindings {
		if utils.IsAnyKeyJustPressed(b.keys...) {
			actions = append(actions, b.action)
		}
	}
	return actions
}

// currentPointer 本帧的指针状态
func currentPointer() utils.InputState {
	return utils.GetInputState()
}

// apply 执行一个动作
// 照片查看器打开时左右键用于翻页，不改变 step
func (s *SpaceScene) apply(a sceneAction) {
	switch a {
	case actionNext:
		if s.viewer.IsActive() {
			s.viewer.Next()
			return
		}
		s.journey.Jump(s.Step())
		s.journey.Next()
	case actionPrev:
		if s.viewer.IsActive() {
			s.viewer.Prev()
			return
		}
		s.journey.Jump(s.Step())
		s.journey.Prev()
	case actionReset:
		s.viewer.Close()
		s.journey.Reset()
	case actionClose:
		s.viewer.Close()
	case actionToggleCard:
		s.card.Toggle()
	case actionToggleHUD:
		s.settings.SetShowHUD(!s.settings.GetSettings().ShowHUD)
		s.saveSettings()
	case actionToggleCaptions:
		s.settings.SetShowCaptions(!s.settings.GetSettings().ShowCaptions)
		s.saveSettings()
	case actionQualityUp:
		s.setQuality(s.settings.EffectQuality() + qualityStep)
	case actionQualityDown:
		s.setQuality(s.settings.EffectQuality() - qualityStep)
	case actionTogglePause:
		s.clock.SetPaused(!s.clock.IsPaused())
		log.Printf("[SpaceScene] Paused: %v", s.clock.IsPaused())
	}
}

// setQuality 调整画质并重建氛围效果
func (s *SpaceScene) setQuality(quality float64) {
	s.settings.SetEffectQuality(quality)
	s.composer.SetQuality(s.settings.EffectQuality())
	log.Printf("[SpaceScene] Effect quality: %.1f", s.settings.EffectQuality())
	s.saveSettings()
}

func (s *SpaceScene) saveSettings() {
	if err := s.settings.Save(); err != nil {
		log.Printf("[SpaceScene] Warning: %v", err)
	}
}

// handlePointer 处理指针：先交给打开的界面模块，再做场景拾取
func (s *SpaceScene) handlePointer(in utils.InputState) {
	if s.viewer.IsActive() {
		s.interaction.PointerAt(0)
		if in.JustPressed {
			s.viewer.HandleClick(in.X, in.Y)
		}
		return
	}
	if in.JustPressed && s.card.HandleClick(in.X, in.Y) {
		return
	}

	id, ok := systems.Pick(s.entityManager, s.camera.View(), s.projection(), s.viewport(), float64(in.X), float64(in.Y))
	if !ok {
		s.interaction.PointerAt(0)
		return
	}
	s.interaction.PointerAt(id)
	if in.JustPressed {
		s.interaction.Click(id)
	}
}
