package systems

import (
	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/motion"
)

// MotionSystem 每帧根据模拟时间重新计算所有场景对象的变换
// 变换只取决于 (t, SceneObjectComponent)，不在对象上累积状态
type MotionSystem struct {
	entityManager *ecs.EntityManager
}

// NewMotionSystem 创建运动系统
func NewMotionSystem(em *ecs.EntityManager) *MotionSystem {
	return &MotionSystem{
		entityManager: em,
	}
}

// Update 按实体ID升序更新变换
// 子对象的ID总是大于父对象，所以读取父对象变换时它已经是本帧的结果
func (s *MotionSystem) Update(t float64) {
	em := s.entityManager
	entities := ecs.GetEntitiesWith2[*components.SceneObjectComponent, *components.TransformComponent](em)

	for _, id := range entities {
		if !em.IsAlive(id) {
			continue
		}
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](em, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)

		*transform = s.evaluate(t, obj)

		// 悬停效果覆盖缩放和不透明度
		if hover, ok := ecs.GetComponent[*components.HoverHighlightComponent](em, id); ok {
			transform.Scale = hover.Scale()
			transform.Opacity = hover.Opacity()
		}
	}
}

// evaluate 计算单个对象在 t 时刻的变换
func (s *MotionSystem) evaluate(t float64, obj *components.SceneObjectComponent) components.TransformComponent {
	m := obj.Motion

	position := obj.BasePosition
	if obj.Parent != 0 {
		if parent, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, obj.Parent); ok {
			position = parent.Position.Add(obj.BasePosition)
		}
	}
	rotation := m.BaseRotation
	scale := obj.BaseScale
	opacity := obj.Visual.Opacity

	switch m.Kind {
	case components.MotionOrbit:
		position = motion.Orbit(t, m.Orbit)
		rotation = rotation.Add(motion.FaceTowards(position, m.FaceTarget))
	case components.MotionSpin:
		rotation = rotation.Add(m.SpinRate.Mul(t))
		if m.WobbleAxis >= 0 && m.WobbleAxis < 3 {
			rotation[m.WobbleAxis] += motion.Wobble(t, m.WobbleFrequency, m.WobbleAmplitude)
		}
	case components.MotionFlicker:
		scale *= motion.Flicker(t, m.FlickerDelay, m.FlickerMin, m.FlickerMax)
	case components.MotionDrift:
		rotation = rotation.Add(motion.Drift(t, m.DriftRate))
	case components.MotionPulse:
		scale *= motion.Pulse(t, m.PulseSpeed, m.PulseAmplitude)
		rotation = rotation.Add(m.SpinRate.Mul(t))
	case components.MotionStreak:
		position = position.Add(motion.ShootingStar(t, m.Streak))
	case components.MotionRise:
		position = motion.Rise(t, m.Rise)
	}

	if m.HasFloat() {
		offset, sway := motion.Float(t, m.Float)
		position = position.Add(offset)
		rotation = rotation.Add(sway)
	}

	return components.TransformComponent{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
		Opacity:  opacity,
	}
}
