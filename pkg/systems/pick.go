package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/ecs"
)

// Viewport 屏幕尺寸（像素）
type Viewport struct {
	Width  int
	Height int
}

// ScreenPoint 世界坐标投影到屏幕后的结果
type ScreenPoint struct {
	X, Y    float64 // 屏幕坐标，原点在左上角
	Radius  float64 // 世界半径在屏幕上的像素半径
	Depth   float64 // 到镜头的裁剪空间深度 w，越小越近
	Visible bool    // 是否在镜头前方
}

// ProjectPoint 把世界坐标 p 和半径 radius 投影到屏幕
func ProjectPoint(p mgl64.Vec3, radius float64, view, proj mgl64.Mat4, vp Viewport) ScreenPoint {
	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	w := clip.W()
	if w <= 1e-6 {
		return ScreenPoint{}
	}

	win := mgl64.Project(p, view, proj, 0, 0, vp.Width, vp.Height)
	return ScreenPoint{
		X:       win.X(),
		Y:       float64(vp.Height) - win.Y(),
		Radius:  radius * proj.At(1, 1) / w * float64(vp.Height) / 2,
		Depth:   w,
		Visible: true,
	}
}

// Pick 返回屏幕坐标 (mx, my) 下最近的可点击对象
// 命中区域是对象当前位置处半径为 Radius×Scale 的球在屏幕上的投影
func Pick(em *ecs.EntityManager, view, proj mgl64.Mat4, vp Viewport, mx, my float64) (ecs.EntityID, bool) {
	var (
		best      ecs.EntityID
		bestDepth = math.Inf(1)
	)

	entities := ecs.GetEntitiesWith2[*components.ClickableComponent, *components.TransformComponent](em)
	for _, id := range entities {
		if !em.IsAlive(id) {
			continue
		}
		clickable, _ := ecs.GetComponent[*components.ClickableComponent](em, id)
		if !clickable.IsEnabled {
			continue
		}
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		sp := ProjectPoint(transform.Position, clickable.Radius*transform.Scale, view, proj, vp)
		if !sp.Visible {
			continue
		}
		if math.Hypot(mx-sp.X, my-sp.Y) > sp.Radius {
			continue
		}
		if sp.Depth < bestDepth {
			best, bestDepth = id, sp.Depth
		}
	}

	return best, best != 0
}
