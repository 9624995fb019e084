package scenes

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/systems"
)

// 渲染参数
const (
	torusSegments    = 48
	torusStroke      = 2.0
	photoBorderWidth = 2.0
	minPointRadius   = 0.5
	maxPointRadius   = 4.0
	minSphereRadius  = 0.75
	lightGlowFactor  = 3.0
	lightGlowAlpha   = 0.25
	highlightOffset  = 0.3 // 行星高光相对半径的偏移
	highlightRadius  = 0.45
	highlightAlpha   = 0.35
	baseLightLevel   = 0.55
)

var (
	backgroundColor  = color.RGBA{R: 5, G: 1, B: 15, A: 255}
	placeholderColor = color.RGBA{R: 70, G: 60, B: 95, A: 255}
	highlightColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// drawItem 一个待绘制对象，按深度从远到近排序（画家算法）
type drawItem struct {
	depth float64
	draw  func(screen *ebiten.Image)
}

// projection 当前屏幕比例下的投影矩阵
func (s *SpaceScene) projection() mgl64.Mat4 {
	return s.camera.Projection(float64(s.width) / float64(s.height))
}

// lightLevel 环境光对颜色的整体影响，范围 (0, 1]
func (s *SpaceScene) lightLevel() float64 {
	return math.Min(1, baseLightLevel+s.config.Lights.Ambient)
}

// drawWorld 把所有场景对象投影到屏幕
func (s *SpaceScene) drawWorld(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	em := s.entityManager
	view, proj, vp := s.camera.View(), s.projection(), s.viewport()
	light := s.lightLevel()
	eye := s.camera.State().Position

	ids := ecs.GetEntitiesWith2[*components.SceneObjectComponent, *components.TransformComponent](em)
	items := make([]drawItem, 0, len(ids))
	for _, id := range ids {
		if !em.IsAlive(id) {
			continue
		}
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		if tr.Opacity <= 0 || obj.Visual.Shape == components.ShapeNone {
			continue
		}

		// 点云和行星环的中心可能在镜头后方，但部分点仍然可见
		center := systems.ProjectPoint(tr.Position, obj.Visual.Size*tr.Scale, view, proj, vp)
		extended := obj.Visual.Shape == components.ShapePoints || obj.Visual.Shape == components.ShapeTorus
		if !center.Visible && !extended {
			continue
		}
		depth := tr.Position.Sub(eye).Len()

		var fn func(screen *ebiten.Image)
		switch obj.Visual.Shape {
		case components.ShapeSphere:
			clr := shade(obj.Visual.Color, light, tr.Opacity)
			isPlanet := obj.Kind == components.KindPlanet
			isLight := obj.Kind == components.KindLight
			fn = func(screen *ebiten.Image) { drawSphere(screen, center, clr, isPlanet, isLight) }
		case components.ShapeTorus:
			points := torusOutline(obj.Visual.Size, tr, view, proj, vp)
			clr := shade(obj.Visual.Color, light, tr.Opacity)
			fn = func(screen *ebiten.Image) { drawPolyline(screen, points, clr) }
		case components.ShapePoints:
			points := pointCloud(obj.Visual.Points, obj.Visual.Size, tr, view, proj, vp)
			clr := shade(obj.Visual.Color, 1, tr.Opacity)
			fn = func(screen *ebiten.Image) { drawPoints(screen, points, clr) }
		case components.ShapePoint:
			clr := shade(obj.Visual.Color, 1, tr.Opacity)
			fn = func(screen *ebiten.Image) { drawPoints(screen, []systems.ScreenPoint{center}, clr) }
		case components.ShapeHeart:
			clr := shade(obj.Visual.Color, 1, tr.Opacity)
			fn = func(screen *ebiten.Image) { drawHeart(screen, center, clr) }
		case components.ShapePlane:
			frame := systems.ProjectPoint(tr.Position, obj.Visual.Size*tr.Scale/2, view, proj, vp)
			entity := id
			opacity := tr.Opacity
			fn = func(screen *ebiten.Image) { s.drawPhotoFrame(screen, entity, frame, opacity) }
		default:
			continue
		}
		items = append(items, drawItem{depth: depth, draw: fn})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, item := range items {
		item.draw(screen)
	}
}

// shade 按光照和不透明度调整颜色（color.RGBA 是预乘 alpha）
func shade(c color.RGBA, light, opacity float64) color.RGBA {
	opacity = math.Max(0, math.Min(1, opacity))
	k := light * opacity
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: uint8(float64(c.A) * opacity),
	}
}

// modelMatrix 平移 × 旋转(Y, X, Z) × 缩放
func modelMatrix(tr *components.TransformComponent) mgl64.Mat4 {
	p, r := tr.Position, tr.Rotation
	return mgl64.Translate3D(p.X(), p.Y(), p.Z()).
		Mul4(mgl64.HomogRotate3DY(r.Y())).
		Mul4(mgl64.HomogRotate3DX(r.X())).
		Mul4(mgl64.HomogRotate3DZ(r.Z())).
		Mul4(mgl64.Scale3D(tr.Scale, tr.Scale, tr.Scale))
}

// pointCloud 把局部点云变换到世界坐标后投影
func pointCloud(local []mgl64.Vec3, size float64, tr *components.TransformComponent, view, proj mgl64.Mat4, vp systems.Viewport) []systems.ScreenPoint {
	model := modelMatrix(tr)
	out := make([]systems.ScreenPoint, 0, len(local))
	for _, p := range local {
		world := model.Mul4x1(p.Vec4(1)).Vec3()
		sp := systems.ProjectPoint(world, size/2, view, proj, vp)
		if !sp.Visible {
			continue
		}
		sp.Radius = math.Max(minPointRadius, math.Min(maxPointRadius, sp.Radius))
		out = append(out, sp)
	}
	return out
}

// torusOutline 行星环的中心线（局部 XY 平面上的圆）
func torusOutline(radius float64, tr *components.TransformComponent, view, proj mgl64.Mat4, vp systems.Viewport) []systems.ScreenPoint {
	model := modelMatrix(tr)
	out := make([]systems.ScreenPoint, 0, torusSegments+1)
	for i := 0; i <= torusSegments; i++ {
		a := 2 * math.Pi * float64(i) / torusSegments
		local := mgl64.Vec4{radius * math.Cos(a), radius * math.Sin(a), 0, 1}
		out = append(out, systems.ProjectPoint(model.Mul4x1(local).Vec3(), 0, view, proj, vp))
	}
	return out
}

func drawSphere(screen *ebiten.Image, sp systems.ScreenPoint, clr color.RGBA, isPlanet, isLight bool) {
	x, y := float32(sp.X), float32(sp.Y)
	r := float32(math.Max(minSphereRadius, sp.Radius))

	if isLight {
		glow := shade(clr, 1, lightGlowAlpha)
		vector.DrawFilledCircle(screen, x, y, r*lightGlowFactor, glow, true)
	}
	vector.DrawFilledCircle(screen, x, y, r, clr, true)

	if isPlanet {
		off := r * highlightOffset
		hl := shade(highlightColor, 1, highlightAlpha*float64(clr.A)/255)
		vector.DrawFilledCircle(screen, x-off, y-off, r*highlightRadius, hl, true)
	}
}

// drawPolyline 依次连接相邻的可见点
func drawPolyline(screen *ebiten.Image, points []systems.ScreenPoint, clr color.RGBA) {
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if !a.Visible || !b.Visible {
			continue
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), torusStroke, clr, true)
	}
}

func drawPoints(screen *ebiten.Image, points []systems.ScreenPoint, clr color.RGBA) {
	for _, p := range points {
		r := math.Max(minPointRadius, math.Min(maxPointRadius, p.Radius))
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(r), clr, true)
	}
}

// drawHeart 两个圆 + 下方一个圆拼成的小爱心
func drawHeart(screen *ebiten.Image, sp systems.ScreenPoint, clr color.RGBA) {
	r := float32(math.Max(minPointRadius*2, sp.Radius))
	x, y := float32(sp.X), float32(sp.Y)
	lobe := r / 2
	vector.DrawFilledCircle(screen, x-lobe*0.9, y-lobe*0.5, lobe, clr, true)
	vector.DrawFilledCircle(screen, x+lobe*0.9, y-lobe*0.5, lobe, clr, true)
	vector.DrawFilledCircle(screen, x, y+lobe*0.4, lobe*0.95, clr, true)
}

// drawPhotoFrame 绘制照片框：纹理就绪时绘制照片，否则绘制占位外观
func (s *SpaceScene) drawPhotoFrame(screen *ebiten.Image, id ecs.EntityID, sp systems.ScreenPoint, opacity float64) {
	em := s.entityManager
	half := math.Max(2, sp.Radius)
	x, y, side := sp.X-half, sp.Y-half, 2*half

	border := highlightColor
	if hover, ok := ecs.GetComponent[*components.HoverHighlightComponent](em, id); ok {
		border = hover.Ring()
	}

	tex, _ := ecs.GetComponent[*components.TextureComponent](em, id)
	if tex != nil && tex.IsReady() {
		if tex.Image == nil {
			tex.Image = ebiten.NewImageFromImage(tex.Source)
		}
		b := tex.Image.Bounds()
		scale := math.Min(side/float64(b.Dx()), side/float64(b.Dy()))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(sp.X-float64(b.Dx())*scale/2, sp.Y-float64(b.Dy())*scale/2)
		op.ColorScale.ScaleAlpha(float32(opacity))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(tex.Image, op)
	} else {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(side), float32(side), shade(placeholderColor, 1, opacity), true)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(side), float32(side), photoBorderWidth, shade(border, 1, opacity), true)
}
