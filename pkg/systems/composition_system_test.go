package systems

import (
	"testing"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
)

// countRoles 统计可见对象中每种角色的数量
func countRoles(objs []ObjectDescriptor) map[components.Role]int {
	counts := make(map[components.Role]int)
	for _, o := range objs {
		counts[o.Role]++
	}
	return counts
}

// photoIndices 返回可见照片框的全局下标
func photoIndices(objs []ObjectDescriptor) []int {
	var out []int
	for _, o := range objs {
		if o.Kind == components.KindPhotoFrame {
			out = append(out, o.GlobalIndex)
		}
	}
	return out
}

func newTestComposer(t *testing.T, opts ComposerOptions) (*ecs.EntityManager, *SceneComposer) {
	t.Helper()
	em := ecs.NewEntityManager()
	return em, NewSceneComposer(em, newTestConfig(t), opts)
}

func TestRenderStepZero(t *testing.T) {
	_, sc := newTestComposer(t, ComposerOptions{})

	sc.Render(0, map[int]config.PhotoGroup{1: makeGroup(0, 3)})
	objs := sc.VisibleObjects()
	roles := countRoles(objs)

	if roles[components.RolePlanet] != testPlanetCount {
		t.Errorf("expected %d planets, got %d", testPlanetCount, roles[components.RolePlanet])
	}
	if got := len(photoIndices(objs)); got != 0 {
		t.Errorf("expected no photo frames at step 0, got %d", got)
	}
	for _, role := range []components.Role{components.RoleFinaleRing, components.RoleHeartField, components.RoleFinaleSpot} {
		if roles[role] != 0 {
			t.Errorf("expected no %s at step 0", role)
		}
	}
	if sc.FinaleActive() {
		t.Error("finale should not be active at step 0")
	}
}

func TestRenderResidentObjects(t *testing.T) {
	_, sc := newTestComposer(t, ComposerOptions{})
	sc.Render(0, nil)
	roles := countRoles(sc.VisibleObjects())

	tests := []struct {
		role components.Role
		want int
	}{
		{components.RoleAtmosphere, testPlanetCount},
		{components.RoleGlow, testPlanetCount},
		{components.RoleCrater, testPlanetCount * craterCount},
		{components.RolePlanetRing, 1},
		{components.RoleDust, 1},
		{components.RoleStars, starGroups},
		{components.RoleShootingStar, 4},
		{components.RoleHeartSprite, 6},
		{components.RoleAmbientLight, 1},
		{components.RolePointLight, 1},
		{components.RoleSpotLight, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if roles[tt.role] != tt.want {
				t.Errorf("expected %d %s, got %d", tt.want, tt.role, roles[tt.role])
			}
		})
	}
}

func TestRenderChapterCapAndOffset(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})

	sc.Render(2, map[int]config.PhotoGroup{2: makeGroup(7, 10)})
	got := photoIndices(sc.VisibleObjects())

	want := []int{7, 8, 9, 10, 11}
	if len(got) != len(want) {
		t.Fatalf("expected %d photo frames, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d: expected global index %d, got %d", i, want[i], got[i])
		}
	}

	for i, id := range sc.PhotoFrames() {
		photo, _ := ecs.GetComponent[*components.PhotoFrameComponent](em, id)
		if photo.Step != 2 || photo.LocalIndex != i {
			t.Errorf("frame %d: expected step 2 local %d, got step %d local %d", i, i, photo.Step, photo.LocalIndex)
		}
		if !ecs.HasComponent[*components.ClickableComponent](em, id) {
			t.Errorf("frame %d should be clickable", i)
		}
	}
}

func TestRenderFinale(t *testing.T) {
	_, sc := newTestComposer(t, ComposerOptions{})

	sc.Render(4, map[int]config.PhotoGroup{4: makeGroup(0, 3)})
	objs := sc.VisibleObjects()
	roles := countRoles(objs)

	if !sc.FinaleActive() {
		t.Fatal("finale should be active at the last step")
	}
	for _, role := range []components.Role{components.RoleFinaleRing, components.RoleHeartField, components.RoleFinaleSpot} {
		if roles[role] != 1 {
			t.Errorf("expected one %s, got %d", role, roles[role])
		}
	}
	if roles[components.RoleFinaleLight] != 3 {
		t.Errorf("expected 3 finale lights, got %d", roles[components.RoleFinaleLight])
	}
	if got := len(photoIndices(objs)); got != 0 {
		t.Errorf("expected no photo frames at the finale, got %d", got)
	}
	if roles[components.RolePlanet] != testPlanetCount {
		t.Errorf("planets should stay resident, got %d", roles[components.RolePlanet])
	}
}

func TestRenderFinaleOff(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})

	sc.Render(4, nil)
	sc.Render(0, nil)
	em.RemoveMarkedEntities()

	if sc.FinaleActive() {
		t.Error("finale should be off after leaving the last step")
	}
	roles := countRoles(sc.VisibleObjects())
	if roles[components.RoleFinaleRing] != 0 || roles[components.RoleHeartField] != 0 {
		t.Errorf("finale objects left behind: %v", roles)
	}
}

func TestRenderIdempotent(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})
	groups := map[int]config.PhotoGroup{2: makeGroup(7, 10)}

	sc.Render(2, groups)
	first := sc.VisibleObjects()
	sc.Render(2, groups)
	em.RemoveMarkedEntities()
	second := sc.VisibleObjects()

	if len(first) != len(second) {
		t.Fatalf("object count changed: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Role != second[i].Role {
			t.Errorf("object %d changed: %v/%s -> %v/%s", i, first[i].ID, first[i].Role, second[i].ID, second[i].Role)
		}
	}
}

func TestRenderReplacesChapter(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})
	groups := map[int]config.PhotoGroup{
		1: makeGroup(0, 3),
		2: makeGroup(3, 2),
	}

	sc.Render(1, groups)
	old := sc.PhotoFrames()
	sc.Render(2, groups)

	for _, id := range old {
		if !em.IsPendingDestroy(id) {
			t.Errorf("frame %d from step 1 should be pending destroy", id)
		}
	}
	em.RemoveMarkedEntities()

	got := photoIndices(sc.VisibleObjects())
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("expected frames [3 4], got %v", got)
	}
}

func TestRenderChangedGroupRebuilds(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})

	sc.Render(1, map[int]config.PhotoGroup{1: makeGroup(0, 3)})
	sc.Render(1, map[int]config.PhotoGroup{1: makeGroup(10, 3)})
	em.RemoveMarkedEntities()

	got := photoIndices(sc.VisibleObjects())
	if len(got) != 3 || got[0] != 10 {
		t.Errorf("expected frames starting at 10, got %v", got)
	}
}

func TestRenderMissingGroup(t *testing.T) {
	_, sc := newTestComposer(t, ComposerOptions{})

	sc.Render(1, nil)
	if got := len(sc.PhotoFrames()); got != 0 {
		t.Errorf("expected no frames without a group, got %d", got)
	}

	sc.Render(1, map[int]config.PhotoGroup{1: {Offset: 5}})
	if got := len(sc.PhotoFrames()); got != 0 {
		t.Errorf("expected no frames for an empty group, got %d", got)
	}
}

func TestRenderOutOfRangeStep(t *testing.T) {
	tests := []struct {
		name     string
		policy   config.StepPolicy
		step     int
		wantStep int
		finale   bool
	}{
		{"reset above", config.StepPolicyReset, 99, 0, false},
		{"reset below", config.StepPolicyReset, -1, 0, false},
		{"clamp above", config.StepPolicyClamp, 99, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			cfg := newTestConfig(t)
			cfg.Camera.StepPolicy = tt.policy
			sc := NewSceneComposer(em, cfg, ComposerOptions{})

			sc.Render(tt.step, nil)
			if sc.Step() != tt.wantStep {
				t.Errorf("expected resolved step %d, got %d", tt.wantStep, sc.Step())
			}
			if sc.FinaleActive() != tt.finale {
				t.Errorf("expected finale %v, got %v", tt.finale, sc.FinaleActive())
			}
		})
	}
}

// TestGlobalIndexUnion 所有章节照片的全局下标恰好覆盖 [0, total)
func TestGlobalIndexUnion(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := newTestConfig(t)
	cfg.PhotoRing.Cap = 9

	photos := make([]config.PhotoItem, 27)
	for i := range photos {
		photos[i] = config.PhotoItem{Source: "p.jpg", GlobalIndex: i}
	}
	groups, err := config.BuildPhotoGroups(photos, cfg.Chapters)
	if err != nil {
		t.Fatalf("BuildPhotoGroups() error: %v", err)
	}

	sc := NewSceneComposer(em, cfg, ComposerOptions{})
	seen := make(map[int]bool)
	for _, step := range cfg.ChapterSteps() {
		sc.Render(step, groups)
		for _, idx := range photoIndices(sc.VisibleObjects()) {
			if seen[idx] {
				t.Errorf("global index %d shown twice", idx)
			}
			seen[idx] = true
		}
		em.RemoveMarkedEntities()
	}

	for i := 0; i < len(photos); i++ {
		if !seen[i] {
			t.Errorf("global index %d never shown", i)
		}
	}
}

func TestQualityScaling(t *testing.T) {
	tests := []struct {
		name      string
		quality   float64
		wantStars int
		wantDust  int
	}{
		{"full", 1, 40, 20},
		{"half", 0.5, 20, 10},
		{"zero means full", 0, 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, _ := newTestComposer(t, ComposerOptions{Quality: tt.quality})
			stars, dust := 0, 0
			for _, id := range ecs.GetEntitiesWith1[*components.SceneObjectComponent](em) {
				obj, _ := ecs.GetComponent[*components.SceneObjectComponent](em, id)
				switch obj.Role {
				case components.RoleStars:
					stars += len(obj.Visual.Points)
				case components.RoleDust:
					dust += len(obj.Visual.Points)
				}
			}
			if stars != tt.wantStars || dust != tt.wantDust {
				t.Errorf("expected %d stars / %d dust, got %d / %d", tt.wantStars, tt.wantDust, stars, dust)
			}
		})
	}
}

func TestSetQualityRebuildsAmbient(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})
	planet, _ := sc.Planet(0)

	sc.SetQuality(0.25)
	em.RemoveMarkedEntities()

	if sc.Quality() != 0.25 {
		t.Errorf("expected quality 0.25, got %v", sc.Quality())
	}
	if !em.IsAlive(planet) {
		t.Error("planets must survive a quality change")
	}
	roles := countRoles(sc.VisibleObjects())
	if roles[components.RoleShootingStar] != 1 {
		t.Errorf("expected 1 shooting star at quality 0.25, got %d", roles[components.RoleShootingStar])
	}
}

func TestPhotoTexturesRequested(t *testing.T) {
	requester := newFakeRequester()
	_, sc := newTestComposer(t, ComposerOptions{Textures: requester})

	sc.Render(1, map[int]config.PhotoGroup{1: makeGroup(0, 3)})

	frames := sc.PhotoFrames()
	if len(requester.requests) != len(frames) {
		t.Fatalf("expected %d texture requests, got %d", len(frames), len(requester.requests))
	}
	for i, id := range frames {
		if requester.requests[id] != makeGroup(0, 3).Items[i].Source {
			t.Errorf("frame %d requested %q", i, requester.requests[id])
		}
	}
}

func TestOrbitModeFrames(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := newTestConfig(t)
	cfg.PhotoRing.Mode = config.RingModeOrbit
	sc := NewSceneComposer(em, cfg, ComposerOptions{})

	sc.Render(1, map[int]config.PhotoGroup{1: makeGroup(0, 4)})
	for _, id := range sc.PhotoFrames() {
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](em, id)
		if obj.Motion.Kind != components.MotionOrbit {
			t.Errorf("frame %d: expected orbit motion, got %s", id, obj.Motion.Kind)
		}
		if obj.Motion.Orbit.Center != cfg.Planets[0].Position {
			t.Errorf("frame %d: orbit center %v, want host planet %v", id, obj.Motion.Orbit.Center, cfg.Planets[0].Position)
		}
	}
}

func TestTeardown(t *testing.T) {
	em, sc := newTestComposer(t, ComposerOptions{})
	sc.Render(4, nil)
	sc.Teardown()
	em.RemoveMarkedEntities()

	if got := len(sc.VisibleObjects()); got != 0 {
		t.Errorf("expected no objects after teardown, got %d", got)
	}
	if _, ok := sc.Planet(0); ok {
		t.Error("planet lookup should fail after teardown")
	}
}
