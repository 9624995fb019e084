package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/layout"
	"github.com/decker502/galaxy/pkg/motion"
)

// 行星外观常量
const (
	planetSpinRate        = 0.18 // 自转角速度（弧度/秒）
	planetWobbleFrequency = 0.2
	planetWobbleAmplitude = 0.1
	planetFloatIntensity  = 0.3

	atmosphereScale   = 1.15
	atmosphereOpacity = 0.15
	glowScale         = 1.3
	glowOpacity       = 0.1
	glowSpinRate      = -0.12

	craterCount      = 5
	craterSizeFactor = 0.1
	craterDarken     = 0.5

	planetRingScale     = 1.5
	planetRingTilt      = math.Pi / 2.5
	planetRingFrequency = 0.5
	planetRingAmplitude = 0.1
	planetRingOpacity   = 0.7
)

// 氛围效果常量
const (
	starGroups        = 8 // 星空分成若干组，每组独立闪烁
	starPointSize     = 0.6
	dustPointSize     = 0.05
	dustOpacity       = 0.6
	shootingStarSize  = 0.05
	heartSpriteSize   = 0.3
	heartSpriteAlpha  = 0.8
	heartSpriteSway   = 0.5
	heartSpriteSwayHz = 1.2
)

// 照片框常量
const (
	photoFrameOpacity      = 0.8
	photoFrameHoverOpacity = 1.0
	photoFrameWidth        = 3 // 未缩放的照片平面宽度，高度按 4:3
	photoClickRadius       = 2.5
)

// 终章常量
const (
	finaleRingSpin          = 0.3
	finaleLightVertical     = 0.3
	finaleLightSize         = 0.15
	finaleHeartFieldSize    = 0.06
	finaleHeartFloatSpeed   = 1
	finaleHeartFloatDensity = 0.5
)

var (
	white          = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hoverRingColor = color.RGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 255}
)

// objectBuilder 生成一类对象并返回它们的实体ID
type objectBuilder struct {
	name  string
	build func(sc *SceneComposer) []ecs.EntityID
}

// residentBuilders 常驻对象，按顺序生成
// 行星必须最先生成：子对象的ID大于父对象，MotionSystem 按ID顺序更新时父对象总是先算好
var residentBuilders = []objectBuilder{
	{"planet", buildPlanets},
	{"light", buildLights},
}

// ambientBuilders 氛围对象，数量随画质缩放
var ambientBuilders = []objectBuilder{
	{"dust", buildDust},
	{"stars", buildStars},
	{"shooting-star", buildShootingStars},
	{"heart-sprite", buildHeartSprites},
}

// rng 为每类氛围对象派生独立的随机源，画质变化不影响其他类别
func (sc *SceneComposer) rng(salt int64) *rand.Rand {
	return rand.New(rand.NewSource(sc.config.Ambient.Seed*31 + salt))
}

func buildPlanets(sc *SceneComposer) []ecs.EntityID {
	var ids []ecs.EntityID
	sc.planets = sc.planets[:0]

	for i, p := range sc.config.Planets {
		col := p.Color.MustRGBA()
		planet := sc.spawn(components.SceneObjectComponent{
			Kind:         components.KindPlanet,
			Role:         components.RolePlanet,
			BasePosition: p.Position,
			Visual: components.VisualParams{
				Shape:   components.ShapeSphere,
				Color:   col,
				Size:    p.Size,
				Texture: p.Texture,
				Distort: p.Distort,
			},
			Motion: components.MotionProfile{
				Kind:            components.MotionSpin,
				SpinRate:        mgl64.Vec3{0, planetSpinRate, 0},
				WobbleAxis:      components.AxisX,
				WobbleFrequency: planetWobbleFrequency,
				WobbleAmplitude: planetWobbleAmplitude,
				Float: motion.FloatParams{
					Speed:             p.FloatSpeed,
					RotationIntensity: planetFloatIntensity,
					FloatIntensity:    planetFloatIntensity,
					Seed:              float64(i),
				},
			},
		})
		sc.planets = append(sc.planets, planet)
		ids = append(ids, planet)

		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind:   components.KindDecorative,
			Role:   components.RoleAtmosphere,
			Parent: planet,
			Visual: components.VisualParams{
				Shape:   components.ShapeSphere,
				Color:   col,
				Size:    p.Size * atmosphereScale,
				Opacity: atmosphereOpacity,
			},
		}))

		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind:   components.KindDecorative,
			Role:   components.RoleGlow,
			Parent: planet,
			Visual: components.VisualParams{
				Shape:   components.ShapeSphere,
				Color:   col,
				Size:    p.Size * glowScale,
				Opacity: glowOpacity,
			},
			Motion: components.MotionProfile{
				Kind:     components.MotionSpin,
				SpinRate: mgl64.Vec3{0, glowSpinRate, 0},
			},
		}))

		craterColor := darken(col, craterDarken)
		for _, offset := range layout.Craters(p.Size, craterCount) {
			ids = append(ids, sc.spawn(components.SceneObjectComponent{
				Kind:         components.KindDecorative,
				Role:         components.RoleCrater,
				Parent:       planet,
				BasePosition: offset,
				Visual: components.VisualParams{
					Shape: components.ShapeSphere,
					Color: craterColor,
					Size:  p.Size * craterSizeFactor,
				},
			}))
		}

		if p.Ring {
			ids = append(ids, sc.spawn(components.SceneObjectComponent{
				Kind:         components.KindDecorative,
				Role:         components.RolePlanetRing,
				BasePosition: p.Position,
				Visual: components.VisualParams{
					Shape:   components.ShapeTorus,
					Color:   col,
					Size:    p.Size * planetRingScale,
					Opacity: planetRingOpacity,
				},
				Motion: components.MotionProfile{
					Kind:            components.MotionSpin,
					BaseRotation:    mgl64.Vec3{planetRingTilt, 0, 0},
					WobbleAxis:      components.AxisZ,
					WobbleFrequency: planetRingFrequency,
					WobbleAmplitude: planetRingAmplitude,
				},
			}))
		}
	}
	return ids
}

func buildLights(sc *SceneComposer) []ecs.EntityID {
	lights := sc.config.Lights
	ids := []ecs.EntityID{
		sc.spawn(components.SceneObjectComponent{
			Kind: components.KindLight,
			Role: components.RoleAmbientLight,
			Visual: components.VisualParams{
				Shape:     components.ShapeNone,
				Color:     white,
				Intensity: lights.Ambient,
			},
		}),
	}

	for _, l := range lights.Points {
		ids = append(ids, sc.spawnLight(components.RolePointLight, l, components.MotionProfile{}))
	}
	if lights.Spot.Intensity > 0 {
		ids = append(ids, sc.spawnLight(components.RoleSpotLight, lights.Spot, components.MotionProfile{}))
	}
	return ids
}

func (sc *SceneComposer) spawnLight(role components.Role, l config.LightSpec, m components.MotionProfile) ecs.EntityID {
	col := white
	if l.Color != "" {
		col = l.Color.MustRGBA()
	}
	return sc.spawn(components.SceneObjectComponent{
		Kind:         components.KindLight,
		Role:         role,
		BasePosition: l.Position,
		Visual: components.VisualParams{
			Shape:     components.ShapeNone,
			Color:     col,
			Intensity: l.Intensity,
		},
		Motion: m,
	})
}

func buildDust(sc *SceneComposer) []ecs.EntityID {
	a := sc.config.Ambient
	count := sc.scaledCount(a.DustCount)
	if count == 0 {
		return nil
	}
	return []ecs.EntityID{sc.spawn(components.SceneObjectComponent{
		Kind: components.KindParticleField,
		Role: components.RoleDust,
		Visual: components.VisualParams{
			Shape:   components.ShapePoints,
			Color:   colorOr(a.DustColor, hoverRingColor),
			Size:    dustPointSize,
			Opacity: dustOpacity,
			Points:  layout.Scatter(count, a.DustExtent, sc.rng(1)),
		},
		Motion: components.MotionProfile{
			Kind:      components.MotionDrift,
			DriftRate: a.DustDrift,
		},
	})}
}

func buildStars(sc *SceneComposer) []ecs.EntityID {
	a := sc.config.Ambient
	count := sc.scaledCount(a.StarCount)
	if count == 0 {
		return nil
	}

	points := layout.ScatterShell(count, a.StarInnerRadius, a.StarOuterRadius, sc.rng(2))
	groups := min(starGroups, count)
	ids := make([]ecs.EntityID, 0, groups)
	for g := 0; g < groups; g++ {
		var subset []mgl64.Vec3
		for i := g; i < len(points); i += groups {
			subset = append(subset, points[i])
		}
		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind: components.KindParticleField,
			Role: components.RoleStars,
			Visual: components.VisualParams{
				Shape:  components.ShapePoints,
				Color:  white,
				Size:   starPointSize,
				Points: subset,
			},
			Motion: components.MotionProfile{
				Kind:         components.MotionFlicker,
				FlickerDelay: float64(g) * 2 * math.Pi / float64(groups),
				FlickerMin:   motion.DefaultFlickerMin,
				FlickerMax:   motion.DefaultFlickerMax,
			},
		}))
	}
	return ids
}

func buildShootingStars(sc *SceneComposer) []ecs.EntityID {
	a := sc.config.Ambient
	count := sc.scaledCount(a.ShootingStarCount)
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind: components.KindDecorative,
			Role: components.RoleShootingStar,
			Visual: components.VisualParams{
				Shape: components.ShapeSphere,
				Color: white,
				Size:  shootingStarSize,
			},
			Motion: components.MotionProfile{
				Kind: components.MotionStreak,
				Streak: motion.StreakParams{
					Seed:   uint64(a.Seed) + uint64(i)*7919,
					Speed:  a.ShootingStarSpeed,
					ZStart: a.ShootingStarZ[0],
					ZEnd:   a.ShootingStarZ[1],
					Spread: a.ShootingStarXY,
				},
			},
		}))
	}
	return ids
}

func buildHeartSprites(sc *SceneComposer) []ecs.EntityID {
	a := sc.config.Ambient
	count := sc.scaledCount(a.HeartSpriteCount)
	if count == 0 {
		return nil
	}

	rng := sc.rng(3)
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		origin := mgl64.Vec3{
			(rng.Float64() - 0.5) * a.DustExtent / 2,
			-a.HeartSpriteHeight / 2,
			(rng.Float64() - 0.5) * a.DustExtent / 2,
		}
		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind:         components.KindDecorative,
			Role:         components.RoleHeartSprite,
			BasePosition: origin,
			Visual: components.VisualParams{
				Shape:   components.ShapeHeart,
				Color:   colorOr(a.HeartSpriteColor, hoverRingColor),
				Size:    heartSpriteSize,
				Opacity: heartSpriteAlpha,
			},
			Motion: components.MotionProfile{
				Kind: components.MotionRise,
				Rise: motion.RiseParams{
					Origin:        origin,
					Seed:          uint64(a.Seed) + uint64(i)*104729,
					Speed:         a.HeartSpriteSpeed,
					Height:        a.HeartSpriteHeight,
					SwayAmplitude: heartSpriteSway,
					SwayFrequency: heartSpriteSwayHz,
				},
			},
		}))
	}
	return ids
}

// buildPhotoRing 在章节宿主行星周围生成照片框
// 超过上限的照片直接丢弃；全局下标 = 分组 Offset + 本地下标
func (sc *SceneComposer) buildPhotoRing(step int, chapter config.ChapterConfig, group config.PhotoGroup) []ecs.EntityID {
	ringCfg := sc.config.PhotoRing
	center := mgl64.Vec3{}
	if chapter.Planet >= 0 && chapter.Planet < len(sc.config.Planets) {
		center = sc.config.Planets[chapter.Planet].Position
	}

	slots := layout.Ring(len(group.Items), center, sc.config.RingParams())
	ids := make([]ecs.EntityID, 0, len(slots))
	for _, slot := range slots {
		item := group.Items[slot.Index]

		var m components.MotionProfile
		if ringCfg.Mode == config.RingModeOrbit {
			m = components.MotionProfile{
				Kind: components.MotionOrbit,
				Orbit: motion.OrbitParams{
					Center:         center,
					Radius:         ringCfg.Radius,
					Speed:          ringCfg.OrbitSpeed,
					Phase:          slot.Angle,
					VerticalFactor: ringCfg.OrbitVerticalFactor,
				},
			}
		} else {
			m = components.MotionProfile{
				Kind: components.MotionStatic,
				Float: motion.FloatParams{
					Speed:             ringCfg.Float.Speed,
					RotationIntensity: ringCfg.Float.RotationIntensity,
					FloatIntensity:    ringCfg.Float.FloatIntensity,
					Seed:              float64(group.GlobalIndex(slot.Index)),
				},
			}
		}

		id := sc.spawn(components.SceneObjectComponent{
			Kind:         components.KindPhotoFrame,
			Role:         components.RolePhotoFrame,
			Layer:        components.LayerChapter,
			BasePosition: slot.Position,
			BaseScale:    ringCfg.FrameSize,
			Visual: components.VisualParams{
				Shape:   components.ShapePlane,
				Color:   white,
				Size:    photoFrameWidth,
				Opacity: photoFrameOpacity,
				Texture: item.Source,
			},
			Motion: m,
		},
			&components.PhotoFrameComponent{
				GlobalIndex: group.GlobalIndex(slot.Index),
				LocalIndex:  slot.Index,
				Step:        step,
				Caption:     item.Caption,
				Source:      item.Source,
			},
			&components.ClickableComponent{Radius: photoClickRadius, IsEnabled: true},
			&components.HoverHighlightComponent{
				NormalScale:    ringCfg.FrameSize,
				HoverScale:     ringCfg.HoverSize,
				NormalOpacity:  photoFrameOpacity,
				HoverOpacity:   photoFrameHoverOpacity,
				RingColor:      white,
				HoverRingColor: hoverRingColor,
			},
			&components.TextureComponent{Ref: item.Source, State: components.TexturePending},
		)
		if sc.textures != nil && item.Source != "" {
			sc.textures.Request(id, item.Source)
		}
		ids = append(ids, id)
	}
	return ids
}

// buildFinale 终章效果：脉动光环、环绕光点、心形粒子场和聚光灯
func (sc *SceneComposer) buildFinale() []ecs.EntityID {
	f := sc.config.Finale
	col := colorOr(f.Color, hoverRingColor)
	var ids []ecs.EntityID

	ids = append(ids, sc.spawn(components.SceneObjectComponent{
		Kind:         components.KindDecorative,
		Role:         components.RoleFinaleRing,
		Layer:        components.LayerFinale,
		BasePosition: f.Center,
		Visual: components.VisualParams{
			Shape:   components.ShapeTorus,
			Color:   col,
			Size:    f.RingRadius,
			Opacity: planetRingOpacity,
		},
		Motion: components.MotionProfile{
			Kind:           components.MotionPulse,
			SpinRate:       mgl64.Vec3{0, 0, finaleRingSpin},
			PulseSpeed:     f.PulseSpeed,
			PulseAmplitude: f.PulseAmplitude,
		},
	}))

	for i := 0; i < f.LightCount; i++ {
		lightColor := col
		if len(f.LightColors) > 0 {
			lightColor = f.LightColors[i%len(f.LightColors)].MustRGBA()
		}
		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind:         components.KindLight,
			Role:         components.RoleFinaleLight,
			Layer:        components.LayerFinale,
			BasePosition: f.Center,
			Visual: components.VisualParams{
				Shape:     components.ShapeSphere,
				Color:     lightColor,
				Size:      finaleLightSize,
				Intensity: 1,
			},
			Motion: components.MotionProfile{
				Kind: components.MotionOrbit,
				Orbit: motion.OrbitParams{
					Center:         f.Center,
					Radius:         f.LightRadius,
					Speed:          f.LightSpeed,
					Phase:          2 * math.Pi * float64(i) / float64(f.LightCount),
					VerticalFactor: finaleLightVertical,
				},
				FaceTarget: f.Center,
			},
		}))
	}

	points := layout.Heart(f.HeartPoints, mgl64.Vec3{}, layout.HeartParams{
		Scale:  f.HeartScale,
		Jitter: f.HeartJitter,
	}, sc.rng(4))
	if len(points) > 0 {
		ids = append(ids, sc.spawn(components.SceneObjectComponent{
			Kind:         components.KindParticleField,
			Role:         components.RoleHeartField,
			Layer:        components.LayerFinale,
			BasePosition: f.Center,
			Visual: components.VisualParams{
				Shape:  components.ShapePoints,
				Color:  col,
				Size:   finaleHeartFieldSize,
				Points: points,
			},
			Motion: components.MotionProfile{
				Kind: components.MotionStatic,
				Float: motion.FloatParams{
					Speed:          finaleHeartFloatSpeed,
					FloatIntensity: finaleHeartFloatDensity,
				},
			},
		}))
	}

	spot := f.Spotlight
	if spot.Intensity == 0 {
		spot.Intensity = 1
	}
	id := sc.spawnLight(components.RoleFinaleSpot, spot, components.MotionProfile{})
	if obj, ok := ecs.GetComponent[*components.SceneObjectComponent](sc.entityManager, id); ok {
		obj.Layer = components.LayerFinale
	}
	ids = append(ids, id)

	return ids
}

// darken 按比例调暗颜色
func darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// colorOr 解析可选颜色，未配置时使用 fallback
func colorOr(c config.HexColor, fallback color.RGBA) color.RGBA {
	if c == "" {
		return fallback
	}
	return c.MustRGBA()
}
