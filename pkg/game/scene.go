package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a viewer scene (e.g. the space journey).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，用于释放场景持有的后台资源
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - 被 SceneManager 替换为新场景
//   - 程序退出
type Closer interface {
	Close()
}
