package systems

import (
	"log"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/ecs"
)

// InteractionSystem 把指针事件分发给照片框
//
// 渲染层负责命中测试（见 Pick），这里只处理 Hover / Leave / Click。
// 已标记销毁的实体和非照片实体上的事件被忽略。
type InteractionSystem struct {
	entityManager *ecs.EntityManager
	onPick        PickHandler
	hovered       ecs.EntityID
}

// NewInteractionSystem 创建交互系统，onPick 可以为 nil
func NewInteractionSystem(em *ecs.EntityManager, onPick PickHandler) *InteractionSystem {
	return &InteractionSystem{
		entityManager: em,
		onPick:        onPick,
	}
}

// SetPickHandler 替换点击回调
func (s *InteractionSystem) SetPickHandler(onPick PickHandler) {
	s.onPick = onPick
}

// photo 返回可交互的照片框，实体不可交互时返回 false
func (s *InteractionSystem) photo(id ecs.EntityID) (*components.PhotoFrameComponent, bool) {
	if id == 0 || !s.entityManager.IsAlive(id) {
		return nil, false
	}
	return ecs.GetComponent[*components.PhotoFrameComponent](s.entityManager, id)
}

// Hover 指针进入对象，只修改该对象自己的悬停标记
func (s *InteractionSystem) Hover(id ecs.EntityID) bool {
	if _, ok := s.photo(id); !ok {
		return false
	}
	hover, ok := ecs.GetComponent[*components.HoverHighlightComponent](s.entityManager, id)
	if !ok {
		return false
	}
	hover.IsActive = true
	s.hovered = id
	return true
}

// Leave 指针离开对象
// 对已销毁的对象也复位标记，避免组件被复用时残留高亮
func (s *InteractionSystem) Leave(id ecs.EntityID) {
	if hover, ok := ecs.GetComponent[*components.HoverHighlightComponent](s.entityManager, id); ok {
		hover.IsActive = false
	}
	if s.hovered == id {
		s.hovered = 0
	}
}

// Click 点击对象，命中照片框时恰好调用一次 PickHandler
func (s *InteractionSystem) Click(id ecs.EntityID) bool {
	photo, ok := s.photo(id)
	if !ok {
		return false
	}
	if clickable, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id); ok && !clickable.IsEnabled {
		return false
	}

	log.Printf("[InteractionSystem] Photo %d picked (step %d)", photo.GlobalIndex, photo.Step)
	if s.onPick != nil {
		s.onPick(photo.GlobalIndex)
	}
	return true
}

// PointerAt 根据本帧命中结果更新悬停状态：离开旧对象，进入新对象
// id 为 0 表示指针不在任何照片上
func (s *InteractionSystem) PointerAt(id ecs.EntityID) {
	if id == s.hovered && (id == 0 || s.entityManager.IsAlive(id)) {
		return
	}
	if s.hovered != 0 {
		s.Leave(s.hovered)
	}
	if id != 0 {
		s.Hover(id)
	}
}

// Hovered 当前悬停的照片框，没有时返回 0
func (s *InteractionSystem) Hovered() ecs.EntityID {
	if s.hovered != 0 && !s.entityManager.IsAlive(s.hovered) {
		return 0
	}
	return s.hovered
}
