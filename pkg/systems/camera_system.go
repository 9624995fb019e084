package systems

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
	"github.com/decker502/galaxy/pkg/utils"
)

// lookAtFallback 位置和注视点重合时使用的视线方向
var lookAtFallback = mgl64.Vec3{0, 0, -1}

// CameraSystem 管理镜头沿航点的移动。
// 每个 tick 都把镜头位置和注视点按固定比例 α 插值到当前 step 的航点，
// 不区分 step 是否刚刚改变，因此不需要单独的补间动画，也不会越过目标。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	config        *config.SceneConfig
	cameraEntity  ecs.EntityID // 镜头实体ID
	lastTarget    int
}

// NewCameraSystem 创建镜头控制系统，镜头初始位于 step 0 的航点
func NewCameraSystem(em *ecs.EntityManager, cfg *config.SceneConfig) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
		config:        cfg,
		lastTarget:    -1,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{})
	cs.SnapTo(0)

	return cs
}

// CameraEntity 返回镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

// SetConfig 配置重载后替换航点表，镜头保持当前位置继续插值
func (cs *CameraSystem) SetConfig(cfg *config.SceneConfig) {
	cs.config = cfg
	cs.lastTarget = -1
}

// Target 返回 step 对应的航点
// 越界 step 按 StepPolicy 处理；没有航点时返回零值
func (cs *CameraSystem) Target(step int) config.Waypoint {
	if len(cs.config.Waypoints) == 0 {
		return config.Waypoint{}
	}
	resolved, _ := cs.config.ResolveStep(step)
	return cs.config.Waypoints[resolved]
}

// Update 把镜头向 step 的航点插值一次
func (cs *CameraSystem) Update(step int) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	resolved, inRange := cs.config.ResolveStep(step)
	if resolved != cs.lastTarget {
		if !inRange {
			log.Printf("[CameraSystem] Step %d out of range, heading to waypoint %d", step, resolved)
		}
		cs.lastTarget = resolved
	}

	wp := cs.Target(step)
	alpha := cs.config.Camera.LerpFactor
	cam.Position = utils.LerpVec3(cam.Position, wp.Position, alpha)
	cam.LookAt = utils.LerpVec3(cam.LookAt, wp.LookAt, alpha)
}

// SnapTo 立即把镜头放到 step 的航点
func (cs *CameraSystem) SnapTo(step int) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	wp := cs.Target(step)
	cam.Position = wp.Position
	cam.LookAt = wp.LookAt
}

// State 返回镜头当前状态的副本
func (cs *CameraSystem) State() components.CameraComponent {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return components.CameraComponent{}
	}
	return *cam
}

// View 返回观察矩阵
func (cs *CameraSystem) View() mgl64.Mat4 {
	state := cs.State()
	lookAt := state.LookAt
	if state.Position.Sub(lookAt).Len() < 1e-9 {
		lookAt = state.Position.Add(lookAtFallback)
	}
	return mgl64.LookAtV(state.Position, lookAt, cs.config.Camera.Up)
}

// Projection 返回透视投影矩阵
func (cs *CameraSystem) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	cam := cs.config.Camera
	return mgl64.Perspective(mgl64.DegToRad(cam.FOV), aspect, cam.Near, cam.Far)
}
