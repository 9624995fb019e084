package scenes

import (
	"testing"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/systems"
	"github.com/decker502/galaxy/pkg/utils"
)

// testSceneYAML 三个航点：开场、一个照片章节、终章
const testSceneYAML = `
camera:
  lerp_factor: 0.1
waypoints:
  - position: [0, 0, 8]
    look_at: [0, 0, 0]
  - position: [0, 0, -1]
    look_at: [0, 0, -8]
  - position: [0, 1, 7]
    look_at: [0, 0, 0]
planets:
  - position: [0, 0, -8]
    color: "#ff6b9d"
    size: 1.5
photo_ring:
  radius: 2.6
  vertical_amplitude: 0.8
chapters:
  - step: 1
    planet: 0
ambient:
  seed: 7
  dust_count: 10
  dust_extent: 10
  star_count: 20
  star_inner_radius: 50
  star_outer_radius: 80
finale:
  ring_radius: 3
  light_count: 2
  light_radius: 4
  heart_points: 20
  heart_scale: 0.12
messages:
  - title: Start
    text: hello
  - title: Chapter
    text: photos
  - title: End
    text: bye
    button: Again
`

const testPhotoYAML = `
photos:
  - src: a.jpg
    caption: first
  - src: b.jpg
    caption: second
  - src: c.jpg
  - src: d.jpg
`

func newTestScene(t *testing.T, startStep int) *SpaceScene {
	t.Helper()
	sceneCfg, err := config.ParseSceneConfig([]byte(testSceneYAML))
	if err != nil {
		t.Fatalf("ParseSceneConfig() error: %v", err)
	}
	photoCfg, err := config.ParsePhotoConfig([]byte(testPhotoYAML))
	if err != nil {
		t.Fatalf("ParsePhotoConfig() error: %v", err)
	}
	s, err := NewSpaceScene(SpaceSceneOptions{
		Scene:     sceneCfg,
		Photos:    photoCfg,
		StartStep: startStep,
		Width:     800,
		Height:    600,
	})
	if err != nil {
		t.Fatalf("NewSpaceScene() error: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func pointerAt(x, y int, pressed bool) utils.InputState {
	return utils.InputState{X: x, Y: y, JustPressed: pressed}
}

// TestSpaceScene_StepNavigation 测试前进、后退和回绕
func TestSpaceScene_StepNavigation(t *testing.T) {
	s := newTestScene(t, 0)

	if s.Step() != 0 {
		t.Fatalf("initial step = %d, want 0", s.Step())
	}
	if n := len(s.composer.PhotoFrames()); n != 0 {
		t.Errorf("step 0 has %d photo frames, want 0", n)
	}

	s.apply(actionNext)
	s.advance(1.0 / 60)
	if s.Step() != 1 {
		t.Fatalf("step after next = %d, want 1", s.Step())
	}
	if n := len(s.composer.PhotoFrames()); n != 4 {
		t.Errorf("step 1 has %d photo frames, want 4", n)
	}

	s.apply(actionNext)
	s.advance(1.0 / 60)
	if !s.composer.FinaleActive() {
		t.Error("finale should be active at the last step")
	}

	s.apply(actionNext)
	s.advance(1.0 / 60)
	if s.Step() != 0 {
		t.Errorf("step after finale = %d, want 0 (wrap)", s.Step())
	}

	s.apply(actionPrev)
	s.advance(1.0 / 60)
	if s.Step() != 0 {
		t.Errorf("prev at step 0 = %d, want 0", s.Step())
	}
}

// TestSpaceScene_OutOfRangeStartStep 测试越界的初始 step
func TestSpaceScene_OutOfRangeStartStep(t *testing.T) {
	s := newTestScene(t, 9)
	if s.Step() != 0 {
		t.Errorf("step = %d, want 0 (reset policy)", s.Step())
	}

	s.apply(actionNext)
	s.advance(1.0 / 60)
	if s.Step() != 1 {
		t.Errorf("step after next = %d, want 1", s.Step())
	}
}

// TestSpaceScene_PhotoViewer 测试点击照片打开查看器，左右键翻页
func TestSpaceScene_PhotoViewer(t *testing.T) {
	s := newTestScene(t, 1)

	frames := s.composer.PhotoFrames()
	if len(frames) != 4 {
		t.Fatalf("photo frames = %d, want 4", len(frames))
	}
	if !s.interaction.Click(frames[2]) {
		t.Fatal("click on photo frame should be handled")
	}
	if !s.viewer.IsActive() || s.viewer.Index() != 2 {
		t.Fatalf("viewer active=%v index=%d, want open at 2", s.viewer.IsActive(), s.viewer.Index())
	}

	s.apply(actionNext)
	if s.viewer.Index() != 3 {
		t.Errorf("viewer index after next = %d, want 3", s.viewer.Index())
	}
	s.advance(1.0 / 60)
	if s.Step() != 1 {
		t.Errorf("step changed to %d while viewer open", s.Step())
	}

	s.apply(actionClose)
	if s.viewer.IsActive() {
		t.Error("viewer should close on Esc")
	}
}

// TestSpaceScene_PointerPick 测试指针拾取：悬停与点击
func TestSpaceScene_PointerPick(t *testing.T) {
	s := newTestScene(t, 1)
	s.camera.SnapTo(1)
	s.advance(0)

	frame := s.composer.PhotoFrames()[0]
	tr, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, frame)
	sp := systems.ProjectPoint(tr.Position, 0, s.camera.View(), s.projection(), s.viewport())
	if !sp.Visible {
		t.Fatal("photo frame should be in front of the camera")
	}

	x, y := int(sp.X+0.5), int(sp.Y+0.5)
	s.handlePointer(pointerAt(x, y, false))
	if s.interaction.Hovered() == 0 {
		t.Error("pointer over a frame should hover it")
	}

	s.handlePointer(pointerAt(x, y, true))
	if !s.viewer.IsActive() {
		t.Fatal("click over a frame should open the viewer")
	}
	if s.interaction.Hovered() != 0 {
		t.Error("hover should be cleared while the viewer is open")
	}
}

// TestSpaceScene_CardAdvancesStep 测试章节卡片按钮
func TestSpaceScene_CardAdvancesStep(t *testing.T) {
	s := newTestScene(t, 0)

	s.onCardNext(2)
	s.advance(1.0 / 60)
	if s.Step() != 2 {
		t.Errorf("step = %d, want 2", s.Step())
	}
	if got := s.card.ButtonLabel(s.Step()); got != "Again" {
		t.Errorf("ButtonLabel = %q, want Again", got)
	}
}

// TestSpaceScene_QualityAndPause 测试画质调整和暂停
func TestSpaceScene_QualityAndPause(t *testing.T) {
	s := newTestScene(t, 0)

	s.apply(actionQualityDown)
	if q := s.composer.Quality(); q < 0.89 || q > 0.91 {
		t.Errorf("quality = %v, want 0.9", q)
	}
	s.apply(actionQualityUp)
	s.apply(actionQualityUp)
	if q := s.composer.Quality(); q != 1 {
		t.Errorf("quality = %v, want clamp to 1", q)
	}

	s.advance(0.5)
	before := s.clock.Elapsed()
	s.apply(actionTogglePause)
	s.advance(0.5)
	if s.clock.Elapsed() != before {
		t.Errorf("clock advanced while paused: %v -> %v", before, s.clock.Elapsed())
	}
}

// TestSpaceScene_Close 测试关闭后实体全部释放
func TestSpaceScene_Close(t *testing.T) {
	s := newTestScene(t, 1)
	s.Close()
	// 只剩镜头实体
	if n := s.entityManager.EntityCount(); n != 1 {
		t.Errorf("EntityCount after Close = %d, want 1 (camera)", n)
	}
	s.Close()
}
