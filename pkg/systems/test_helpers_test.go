package systems

import (
	"fmt"
	"testing"

	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
)

// testSceneYAML 四颗行星、五个航点的测试场景
// 章节 1/2/3 分别在行星 0/1/2，step 4 是终章
const testSceneYAML = `
camera:
  lerp_factor: 0.1
waypoints:
  - position: [0, 0, 8]
    look_at: [0, 0, 0]
  - position: [0, 0.6, -2.5]
    look_at: [0, 0, -8]
  - position: [-4, 2.5, -1]
    look_at: [-5, 2, -6]
  - position: [4, -0.5, -5]
    look_at: [5, -1, -10]
  - position: [0, 1, 7]
    look_at: [0, 0, 0]
planets:
  - position: [0, 0, -8]
    color: "#ff6b9d"
    size: 1.5
    ring: true
  - position: [-5, 2, -6]
    color: "#c471ed"
    size: 1.2
  - position: [5, -1, -10]
    color: "#ffd700"
    size: 1
  - position: [-3, -2, -15]
    color: "#64ffda"
    size: 0.6
photo_ring:
  radius: 2.6
  vertical_amplitude: 0.8
  z_push: 0.6
  float:
    speed: 2
    rotation_intensity: 0.3
    float_intensity: 0.5
chapters:
  - step: 1
    planet: 0
  - step: 2
    planet: 1
  - step: 3
    planet: 2
ambient:
  seed: 42
  dust_count: 20
  dust_extent: 10
  dust_drift: [0.01, 0.02, 0]
  star_count: 40
  star_inner_radius: 50
  star_outer_radius: 80
  shooting_star_count: 4
  shooting_star_speed: 6
  shooting_star_z: [-20, 10]
  shooting_star_spread: 10
  heart_sprite_count: 6
  heart_sprite_speed: 0.6
  heart_sprite_height: 12
finale:
  ring_radius: 3
  pulse_speed: 2
  pulse_amplitude: 0.1
  light_count: 3
  light_radius: 4
  light_speed: 0.8
  light_colors: ["#ff6b9d", "#c471ed"]
  heart_points: 50
  heart_scale: 0.12
  heart_jitter: 0.05
  spotlight:
    position: [0, 5, 8]
    intensity: 2
lights:
  ambient: 0.3
  points:
    - position: [10, 10, 10]
      intensity: 2
  spot:
    position: [0, 0, 10]
    intensity: 1
`

// testPlanetCount testSceneYAML 中的行星数
const testPlanetCount = 4

// newTestConfig 解析测试场景配置
func newTestConfig(t *testing.T) *config.SceneConfig {
	t.Helper()
	cfg, err := config.ParseSceneConfig([]byte(testSceneYAML))
	if err != nil {
		t.Fatalf("ParseSceneConfig() error: %v", err)
	}
	return cfg
}

// makeGroup 生成 n 张照片、起始下标为 offset 的分组
func makeGroup(offset, n int) config.PhotoGroup {
	items := make([]config.PhotoItem, n)
	for i := range items {
		items[i] = config.PhotoItem{
			Source:      fmt.Sprintf("photo%d.jpg", offset+i+1),
			Caption:     fmt.Sprintf("caption %d", offset+i),
			GlobalIndex: offset + i,
		}
	}
	return config.PhotoGroup{Offset: offset, Items: items}
}

// fakeRequester 记录纹理请求
type fakeRequester struct {
	requests map[ecs.EntityID]string
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{requests: make(map[ecs.EntityID]string)}
}

func (f *fakeRequester) Request(entity ecs.EntityID, ref string) {
	f.requests[entity] = ref
}
