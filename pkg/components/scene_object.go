package components

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/galaxy/pkg/ecs"
)

// ObjectKind 场景对象的类别
type ObjectKind int

const (
	KindPlanet ObjectKind = iota
	KindPhotoFrame
	KindParticleField
	KindLight
	KindDecorative
)

// String 返回类别名称，用于日志和导出
func (k ObjectKind) String() string {
	switch k {
	case KindPlanet:
		return "planet"
	case KindPhotoFrame:
		return "photo-frame"
	case KindParticleField:
		return "particle-field"
	case KindLight:
		return "light"
	case KindDecorative:
		return "decorative"
	default:
		return "unknown"
	}
}

// Role 对象在场景中的具体角色
// 同一 Kind 下可以有多种角色，例如装饰物里的大气层、陨石坑、流星
type Role string

const (
	RolePlanet       Role = "planet"
	RoleAtmosphere   Role = "atmosphere"
	RoleGlow         Role = "glow"
	RoleCrater       Role = "crater"
	RolePlanetRing   Role = "planet-ring"
	RolePhotoFrame   Role = "photo-frame"
	RoleDust         Role = "dust"
	RoleStars        Role = "stars"
	RoleShootingStar Role = "shooting-star"
	RoleHeartSprite  Role = "heart-sprite"
	RoleAmbientLight Role = "ambient-light"
	RolePointLight   Role = "point-light"
	RoleSpotLight    Role = "spot-light"
	RoleFinaleRing   Role = "finale-ring"
	RoleFinaleLight  Role = "finale-light"
	RoleHeartField   Role = "heart-field"
	RoleFinaleSpot   Role = "finale-spotlight"
)

// Layer 对象的生命周期归属
type Layer int

const (
	// LayerResident 常驻：行星、氛围效果、基础灯光
	LayerResident Layer = iota
	// LayerChapter 随章节创建和销毁：照片环
	LayerChapter
	// LayerFinale 只在终章存在
	LayerFinale
)

// Shape 渲染时使用的几何形状
type Shape int

const (
	ShapeSphere Shape = iota
	ShapeTorus
	ShapePlane
	ShapePoint
	ShapePoints
	ShapeHeart
	ShapeNone
)

// VisualParams 对象的外观参数
type VisualParams struct {
	Shape     Shape
	Color     color.RGBA
	Size      float64      // 半径或边长（世界单位）
	Opacity   float64      // 0.0 ~ 1.0
	Texture   string       // 可选的纹理引用，为空时使用纯色
	Distort   float64      // 表面扭曲强度
	Intensity float64      // 灯光强度
	Points    []mgl64.Vec3 // 粒子场的局部点云
}

// SceneObjectComponent 场景对象的静态描述
// 创建后不再修改，每帧的变换由 MotionSystem 根据它重新计算
type SceneObjectComponent struct {
	Kind  ObjectKind
	Role  Role
	Layer Layer

	// BasePosition 基础位置
	// Parent 非零时是相对父对象当前位置的偏移
	BasePosition mgl64.Vec3
	Parent       ecs.EntityID

	// BaseScale 基础缩放
	BaseScale float64

	Visual VisualParams
	Motion MotionProfile
}
