// Package scenes 提供查看器的场景实现
package scenes

import (
	"github.com/decker502/galaxy/pkg/game"
)

// Scene 是 game.Scene 的别名
type Scene = game.Scene

var (
	_ Scene       = (*SpaceScene)(nil)
	_ game.Closer = (*SpaceScene)(nil)
)
