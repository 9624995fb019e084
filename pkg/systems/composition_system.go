package systems

import (
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
)

// PickHandler 照片被点击时的回调，参数是照片的全局下标
type PickHandler func(globalIndex int)

// TextureRequester 纹理加载请求方
// 由 game.AssetLoader 实现；为 nil 时照片框一直显示占位外观
type TextureRequester interface {
	Request(entity ecs.EntityID, ref string)
}

// ObjectDescriptor 一个可见对象的描述，是场景组合的对外输出
type ObjectDescriptor struct {
	ID       ecs.EntityID
	Kind     components.ObjectKind
	Role     components.Role
	Shape    components.Shape
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
	Opacity  float64
	Color    color.RGBA
	Size     float64

	// 以下字段只对照片框有意义
	GlobalIndex  int // 非照片为 -1
	Caption      string
	Texture      string
	TextureReady bool
	Hovered      bool
}

// ComposerOptions 场景组合器的可选参数
type ComposerOptions struct {
	// Quality 氛围效果数量倍率，<= 0 视为 1
	Quality float64
	// Textures 照片纹理加载器，可为 nil
	Textures TextureRequester
}

// SceneComposer 根据 step 决定场景中存在哪些对象。
//
// 行星、氛围效果和基础灯光常驻；照片环只在有照片分组的章节存在；
// 终章效果只在最后一个 step 存在。Render 对同一 (step, 分组) 是幂等的。
type SceneComposer struct {
	entityManager *ecs.EntityManager
	config        *config.SceneConfig
	quality       float64
	textures      TextureRequester

	planets  []ecs.EntityID // 下标与 config.Planets 对应
	resident []ecs.EntityID
	ambient  []ecs.EntityID
	chapter  []ecs.EntityID
	finale   []ecs.EntityID

	chapterSignature string
	finaleActive     bool
	step             int
}

// NewSceneComposer 创建场景组合器并立即生成常驻对象
func NewSceneComposer(em *ecs.EntityManager, cfg *config.SceneConfig, opts ComposerOptions) *SceneComposer {
	quality := opts.Quality
	if quality <= 0 {
		quality = 1
	}

	sc := &SceneComposer{
		entityManager: em,
		config:        cfg,
		quality:       quality,
		textures:      opts.Textures,
		step:          -1,
	}

	for _, b := range residentBuilders {
		ids := b.build(sc)
		sc.resident = append(sc.resident, ids...)
		log.Printf("[SceneComposer] Built %d %s objects", len(ids), b.name)
	}
	sc.buildAmbient()

	return sc
}

// Render 让场景反映 step
// groups 缺失或为空时该章节不显示照片，不是错误
func (sc *SceneComposer) Render(step int, groups map[int]config.PhotoGroup) {
	resolved, _ := sc.config.ResolveStep(step)
	sc.step = resolved

	sc.renderChapter(resolved, groups)

	wantFinale := len(sc.config.Waypoints) > 0 && resolved == sc.config.FinaleStep()
	switch {
	case wantFinale && !sc.finaleActive:
		sc.finale = sc.buildFinale()
		sc.finaleActive = true
		log.Printf("[SceneComposer] Finale on (%d objects)", len(sc.finale))
	case !wantFinale && sc.finaleActive:
		sc.destroyAll(sc.finale)
		sc.finale = nil
		sc.finaleActive = false
		log.Printf("[SceneComposer] Finale off")
	}
}

// renderChapter 按需替换照片环
func (sc *SceneComposer) renderChapter(step int, groups map[int]config.PhotoGroup) {
	chapter, isChapter := sc.config.Chapter(step)
	group, hasGroup := groups[step]
	if !isChapter || !hasGroup {
		group = config.PhotoGroup{}
	}

	signature := ""
	if isChapter {
		signature = groupSignature(step, group)
	}
	if signature == sc.chapterSignature {
		return
	}

	sc.destroyAll(sc.chapter)
	sc.chapter = nil
	sc.chapterSignature = signature

	if !isChapter || len(group.Items) == 0 {
		return
	}
	sc.chapter = sc.buildPhotoRing(step, chapter, group)
	log.Printf("[SceneComposer] Step %d: %d photo frames (offset %d)", step, len(sc.chapter), group.Offset)
}

// groupSignature 用于判断照片分组是否变化
func groupSignature(step int, group config.PhotoGroup) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(step))
	b.WriteByte('@')
	b.WriteString(strconv.Itoa(group.Offset))
	for _, item := range group.Items {
		b.WriteByte('|')
		b.WriteString(item.Source)
	}
	return b.String()
}

// SetQuality 调整氛围效果数量并重建氛围对象
func (sc *SceneComposer) SetQuality(quality float64) {
	if quality <= 0 {
		quality = 1
	}
	if quality == sc.quality {
		return
	}
	sc.quality = quality
	sc.destroyAll(sc.ambient)
	sc.ambient = nil
	sc.buildAmbient()
}

// Quality 当前画质倍率
func (sc *SceneComposer) Quality() float64 {
	return sc.quality
}

func (sc *SceneComposer) buildAmbient() {
	for _, b := range ambientBuilders {
		sc.ambient = append(sc.ambient, b.build(sc)...)
	}
}

// scaledCount 按画质缩放数量，配置为正数时至少保留一个
func (sc *SceneComposer) scaledCount(n int) int {
	if n <= 0 {
		return 0
	}
	return max(1, int(float64(n)*sc.quality+0.5))
}

// Step 最近一次 Render 使用的 step（已按 StepPolicy 处理）
func (sc *SceneComposer) Step() int {
	return sc.step
}

// PhotoFrames 当前照片框实体（按本地下标顺序）
func (sc *SceneComposer) PhotoFrames() []ecs.EntityID {
	out := make([]ecs.EntityID, 0, len(sc.chapter))
	for _, id := range sc.chapter {
		if ecs.HasComponent[*components.PhotoFrameComponent](sc.entityManager, id) && sc.entityManager.IsAlive(id) {
			out = append(out, id)
		}
	}
	return out
}

// Planet 返回第 i 个行星的实体
func (sc *SceneComposer) Planet(i int) (ecs.EntityID, bool) {
	if i < 0 || i >= len(sc.planets) {
		return 0, false
	}
	return sc.planets[i], true
}

// FinaleActive 终章效果是否存在
func (sc *SceneComposer) FinaleActive() bool {
	return sc.finaleActive
}

// VisibleObjects 返回所有存活对象的描述，按实体ID升序
func (sc *SceneComposer) VisibleObjects() []ObjectDescriptor {
	em := sc.entityManager
	ids := ecs.GetEntitiesWith2[*components.SceneObjectComponent, *components.TransformComponent](em)

	out := make([]ObjectDescriptor, 0, len(ids))
	for _, id := range ids {
		if !em.IsAlive(id) {
			continue
		}
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](em, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		d := ObjectDescriptor{
			ID:          id,
			Kind:        obj.Kind,
			Role:        obj.Role,
			Shape:       obj.Visual.Shape,
			Position:    tr.Position,
			Rotation:    tr.Rotation,
			Scale:       tr.Scale,
			Opacity:     tr.Opacity,
			Color:       obj.Visual.Color,
			Size:        obj.Visual.Size,
			Texture:     obj.Visual.Texture,
			GlobalIndex: -1,
		}
		if photo, ok := ecs.GetComponent[*components.PhotoFrameComponent](em, id); ok {
			d.GlobalIndex = photo.GlobalIndex
			d.Caption = photo.Caption
		}
		if tex, ok := ecs.GetComponent[*components.TextureComponent](em, id); ok {
			d.TextureReady = tex.IsReady()
		}
		if hover, ok := ecs.GetComponent[*components.HoverHighlightComponent](em, id); ok {
			d.Hovered = hover.IsActive
		}
		out = append(out, d)
	}
	return out
}

// Teardown 销毁组合器创建的所有对象
func (sc *SceneComposer) Teardown() {
	sc.destroyAll(sc.chapter)
	sc.destroyAll(sc.finale)
	sc.destroyAll(sc.ambient)
	sc.destroyAll(sc.resident)
	sc.chapter, sc.finale, sc.ambient, sc.resident, sc.planets = nil, nil, nil, nil, nil
	sc.chapterSignature = ""
	sc.finaleActive = false
}

func (sc *SceneComposer) destroyAll(ids []ecs.EntityID) {
	for _, id := range ids {
		sc.entityManager.DestroyEntity(id)
	}
}

// spawn 创建场景对象，附带初始变换和额外组件
func (sc *SceneComposer) spawn(obj components.SceneObjectComponent, extras ...interface{}) ecs.EntityID {
	em := sc.entityManager
	id := em.CreateEntity()

	if obj.BaseScale == 0 {
		obj.BaseScale = 1
	}
	if obj.Visual.Opacity == 0 {
		obj.Visual.Opacity = 1
	}

	position := obj.BasePosition
	if parent, ok := ecs.GetComponent[*components.TransformComponent](em, obj.Parent); ok && obj.Parent != 0 {
		position = parent.Position.Add(obj.BasePosition)
	}

	ecs.AddComponent(em, id, &obj)
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: position,
		Rotation: obj.Motion.BaseRotation,
		Scale:    obj.BaseScale,
		Opacity:  obj.Visual.Opacity,
	})
	for _, extra := range extras {
		em.AddComponent(id, extra)
	}
	return id
}
