package modules

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/systems"
	"github.com/decker502/galaxy/pkg/utils"
)

// 照片查看器布局
const (
	viewerImageFraction = 0.75 // 图片最多占屏幕的比例
	viewerNavWidth      = 48.0
	viewerPlaceholder   = "loading..."
	viewerFadeTime      = 0.35 // 打开时遮罩淡入的时长（秒）
)

// PhotoViewerModule 照片详情查看器
// 点击照片框后全屏显示照片，支持上一张/下一张（首尾回绕）
//
// 职责：
//   - 维护当前照片下标（全局下标）
//   - 通过 TextureSystem 的管线加载当前照片：模块持有一个只带 TextureComponent 的实体
//   - 渲染遮罩、图片（未就绪时显示占位）、说明文字和 "i / n" 计数
type PhotoViewerModule struct {
	entityManager *ecs.EntityManager
	textures      systems.TextureRequester

	photos []config.PhotoItem
	index  int
	active bool
	opened float64 // 打开后经过的时间（秒）

	// textureEntity 承载当前照片纹理的实体
	textureEntity ecs.EntityID

	face text.Face

	windowWidth  int
	windowHeight int
}

// NewPhotoViewerModule 创建照片查看器
//
// 参数:
//   - em: EntityManager 实例
//   - photos: 全部照片（按全局下标排列）
//   - textures: 纹理加载器，可为 nil（始终显示占位）
//   - windowWidth, windowHeight: 屏幕尺寸
func NewPhotoViewerModule(em *ecs.EntityManager, photos []config.PhotoItem, textures systems.TextureRequester, windowWidth, windowHeight int) *PhotoViewerModule {
	m := &PhotoViewerModule{
		entityManager: em,
		textures:      textures,
		photos:        photos,
		face:          newFace(),
		windowWidth:   windowWidth,
		windowHeight:  windowHeight,
	}
	m.textureEntity = em.CreateEntity()
	ecs.AddComponent(em, m.textureEntity, &components.TextureComponent{})
	return m
}

// SetPhotos 替换照片列表（配置重载后）
// 当前下标越界时关闭查看器
func (m *PhotoViewerModule) SetPhotos(photos []config.PhotoItem) {
	m.photos = photos
	if m.index >= len(photos) {
		m.Close()
	}
}

// SetWindowSize 更新屏幕尺寸
func (m *PhotoViewerModule) SetWindowSize(width, height int) {
	m.windowWidth, m.windowHeight = width, height
}

// Open 打开第 globalIndex 张照片
// 下标越界时不打开并返回 false
func (m *PhotoViewerModule) Open(globalIndex int) bool {
	if globalIndex < 0 || globalIndex >= len(m.photos) {
		log.Printf("[PhotoViewerModule] Photo %d out of range [0, %d)", globalIndex, len(m.photos))
		return false
	}
	if !m.active {
		m.opened = 0
	}
	m.active = true
	m.show(globalIndex)
	return true
}

// Update 推进打开动画
func (m *PhotoViewerModule) Update(deltaTime float64) {
	if m.active {
		m.opened += deltaTime
	}
}

// Alpha 遮罩和照片当前的不透明度（三次方缓入缓出）
func (m *PhotoViewerModule) Alpha() float64 {
	return utils.EaseInOutCubic(utils.Clamp(m.opened/viewerFadeTime, 0, 1))
}

// Close 关闭查看器
func (m *PhotoViewerModule) Close() {
	m.active = false
}

// IsActive 查看器是否打开
func (m *PhotoViewerModule) IsActive() bool {
	return m.active
}

// Index 当前照片的全局下标
func (m *PhotoViewerModule) Index() int {
	return m.index
}

// Current 当前照片
func (m *PhotoViewerModule) Current() (config.PhotoItem, bool) {
	if !m.active || m.index >= len(m.photos) {
		return config.PhotoItem{}, false
	}
	return m.photos[m.index], true
}

// Next 下一张，最后一张之后回到第一张
func (m *PhotoViewerModule) Next() {
	if !m.active || len(m.photos) == 0 {
		return
	}
	m.show((m.index + 1) % len(m.photos))
}

// Prev 上一张，第一张之前回到最后一张
func (m *PhotoViewerModule) Prev() {
	if !m.active || len(m.photos) == 0 {
		return
	}
	m.show((m.index - 1 + len(m.photos)) % len(m.photos))
}

// Counter 返回 "i / n" 形式的计数（从 1 开始）
func (m *PhotoViewerModule) Counter() string {
	return fmt.Sprintf("%d / %d", m.index+1, len(m.photos))
}

// show 切换到第 i 张并请求它的纹理
func (m *PhotoViewerModule) show(i int) {
	m.index = i
	ref := m.photos[i].Source

	tex, ok := ecs.GetComponent[*components.TextureComponent](m.entityManager, m.textureEntity)
	if !ok {
		return
	}
	if tex.Ref == ref && tex.State != components.TextureFailed {
		return
	}
	*tex = components.TextureComponent{Ref: ref, State: components.TexturePending}
	if m.textures != nil && ref != "" {
		m.textures.Request(m.textureEntity, ref)
	}
}

// texture 当前照片的纹理组件
func (m *PhotoViewerModule) texture() *components.TextureComponent {
	tex, _ := ecs.GetComponent[*components.TextureComponent](m.entityManager, m.textureEntity)
	return tex
}

// navRects 左右翻页区域
func (m *PhotoViewerModule) navRects() (prev, next rect) {
	h := float64(m.windowHeight)
	prev = rect{X: 0, Y: 0, W: viewerNavWidth, H: h}
	next = rect{X: float64(m.windowWidth) - viewerNavWidth, Y: 0, W: viewerNavWidth, H: h}
	return prev, next
}

// HandleClick 处理点击：左右边缘翻页，其他位置关闭
// 返回 true 表示点击被查看器消费
func (m *PhotoViewerModule) HandleClick(x, y int) bool {
	if !m.active {
		return false
	}
	prev, next := m.navRects()
	switch {
	case prev.Contains(x, y):
		m.Prev()
	case next.Contains(x, y):
		m.Next()
	default:
		m.Close()
	}
	return true
}

// Draw 渲染查看器
func (m *PhotoViewerModule) Draw(screen *ebiten.Image) {
	if !m.active {
		return
	}
	item, ok := m.Current()
	if !ok {
		return
	}

	alpha := m.Alpha()
	w, h := float64(m.windowWidth), float64(m.windowHeight)
	drawPanel(screen, rect{X: 0, Y: 0, W: w, H: h}, fade(overlayColor, alpha), fade(overlayColor, alpha))

	maxW, maxH := w*viewerImageFraction, h*viewerImageFraction
	area := rect{X: (w - maxW) / 2, Y: (h - maxH) / 2, W: maxW, H: maxH}

	if tex := m.texture(); tex != nil && tex.IsReady() {
		if tex.Image == nil {
			tex.Image = ebiten.NewImageFromImage(tex.Source)
		}
		b := tex.Image.Bounds()
		scale := math.Min(maxW/float64(b.Dx()), maxH/float64(b.Dy()))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate((w-float64(b.Dx())*scale)/2, (h-float64(b.Dy())*scale)/2)
		op.ColorScale.ScaleAlpha(float32(alpha))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(tex.Image, op)
	} else {
		drawPanel(screen, area, fade(placeholderBox, alpha), fade(panelBorder, alpha))
		label := viewerPlaceholder
		if tex != nil && tex.State == components.TextureFailed {
			label = item.Source
		}
		drawCenteredText(screen, label, m.face, area, fade(bodyColor, alpha))
	}

	captionY := area.Y + area.H + panelPadding
	for _, line := range utils.WrapText(item.Caption, m.face, maxW) {
		drawCenteredText(screen, line, m.face, rect{X: 0, Y: captionY, W: w, H: lineHeight}, fade(bodyColor, alpha))
		captionY += lineHeight
	}
	title := fade(titleColor, alpha)
	drawCenteredText(screen, m.Counter(), m.face, rect{X: 0, Y: panelPadding, W: w, H: lineHeight}, title)

	prev, next := m.navRects()
	drawCenteredText(screen, "<", m.face, prev, title)
	drawCenteredText(screen, ">", m.face, next, title)
}

// Cleanup 销毁模块持有的实体
func (m *PhotoViewerModule) Cleanup() {
	m.entityManager.DestroyEntity(m.textureEntity)
	m.active = false
}
