package systems

import (
	"log"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/game"
)

// TextureSource 后台纹理加载结果的来源，由 game.AssetLoader 实现
type TextureSource interface {
	Poll() []game.AssetResult
}

// TextureSystem 在帧线程上把后台解码的图片交给照片框
type TextureSystem struct {
	entityManager *ecs.EntityManager
	source        TextureSource
}

// NewTextureSystem 创建纹理系统
func NewTextureSystem(em *ecs.EntityManager, source TextureSource) *TextureSystem {
	return &TextureSystem{
		entityManager: em,
		source:        source,
	}
}

// Update 应用所有已完成的加载结果，返回应用的数量
// 目标实体已销毁或已换成其他引用时，结果被静默丢弃
func (s *TextureSystem) Update() int {
	if s.source == nil {
		return 0
	}

	applied := 0
	for _, r := range s.source.Poll() {
		if !s.entityManager.IsAlive(r.Entity) {
			continue
		}
		tex, ok := ecs.GetComponent[*components.TextureComponent](s.entityManager, r.Entity)
		if !ok || tex.Ref != r.Ref {
			continue
		}

		if r.Err != nil || r.Image == nil {
			tex.State = components.TextureFailed
			log.Printf("[TextureSystem] Entity %d keeps placeholder for %s", r.Entity, r.Ref)
		} else {
			tex.State = components.TextureReady
			tex.Source = r.Image
			tex.Image = nil
		}
		applied++
	}
	return applied
}
