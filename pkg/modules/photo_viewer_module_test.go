package modules

import (
	"testing"

	"github.com/decker502/galaxy/pkg/components"
	"github.com/decker502/galaxy/pkg/config"
	"github.com/decker502/galaxy/pkg/ecs"
)

type recordingRequester struct {
	refs []string
}

func (r *recordingRequester) Request(_ ecs.EntityID, ref string) {
	r.refs = append(r.refs, ref)
}

func testPhotos(n int) []config.PhotoItem {
	photos := make([]config.PhotoItem, n)
	for i := range photos {
		photos[i] = config.PhotoItem{
			Source:      "photo" + string(rune('a'+i)) + ".jpg",
			Caption:     "caption",
			GlobalIndex: i,
		}
	}
	return photos
}

// TestPhotoViewerModule_OpenAndWrap 测试打开与首尾回绕
func TestPhotoViewerModule_OpenAndWrap(t *testing.T) {
	em := ecs.NewEntityManager()
	req := &recordingRequester{}
	m := NewPhotoViewerModule(em, testPhotos(3), req, 800, 600)

	if m.IsActive() {
		t.Fatal("viewer should start closed")
	}
	if !m.Open(2) {
		t.Fatal("Open(2) should succeed")
	}
	if got := m.Counter(); got != "3 / 3" {
		t.Errorf("Counter() = %q, want \"3 / 3\"", got)
	}

	m.Next()
	if m.Index() != 0 {
		t.Errorf("Next after last = %d, want 0", m.Index())
	}
	m.Prev()
	if m.Index() != 2 {
		t.Errorf("Prev before first = %d, want 2", m.Index())
	}

	item, ok := m.Current()
	if !ok || item.GlobalIndex != 2 {
		t.Errorf("Current() = %+v, %v", item, ok)
	}

	want := []string{"photoc.jpg", "photoa.jpg", "photoc.jpg"}
	if len(req.refs) != len(want) {
		t.Fatalf("requests = %v, want %v", req.refs, want)
	}
	for i := range want {
		if req.refs[i] != want[i] {
			t.Errorf("request %d = %q, want %q", i, req.refs[i], want[i])
		}
	}
}

// TestPhotoViewerModule_OutOfRange 测试越界下标
func TestPhotoViewerModule_OutOfRange(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewPhotoViewerModule(em, testPhotos(2), nil, 800, 600)

	for _, idx := range []int{-1, 2, 100} {
		if m.Open(idx) {
			t.Errorf("Open(%d) should fail", idx)
		}
	}
	if m.IsActive() {
		t.Error("viewer should stay closed")
	}

	// 关闭时翻页无效
	m.Next()
	if m.Index() != 0 {
		t.Errorf("Next while closed changed index to %d", m.Index())
	}
}

// TestPhotoViewerModule_TextureState 测试切换照片时纹理重置为加载中
func TestPhotoViewerModule_TextureState(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewPhotoViewerModule(em, testPhotos(2), nil, 800, 600)

	m.Open(0)
	tex := m.texture()
	if tex == nil {
		t.Fatal("viewer entity should carry a texture")
	}
	if tex.Ref != "photoa.jpg" || tex.State != components.TexturePending {
		t.Errorf("texture = %+v, want pending photoa.jpg", tex)
	}

	tex.State = components.TextureReady
	m.Next()
	tex = m.texture()
	if tex.Ref != "photob.jpg" || tex.State != components.TexturePending {
		t.Errorf("texture after Next = %+v, want pending photob.jpg", tex)
	}
}

// TestPhotoViewerModule_HandleClick 测试点击区域
func TestPhotoViewerModule_HandleClick(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewPhotoViewerModule(em, testPhotos(3), nil, 800, 600)

	if m.HandleClick(400, 300) {
		t.Error("closed viewer should not consume clicks")
	}

	m.Open(1)
	m.HandleClick(790, 300)
	if m.Index() != 2 {
		t.Errorf("right edge click: index = %d, want 2", m.Index())
	}
	m.HandleClick(10, 300)
	if m.Index() != 1 {
		t.Errorf("left edge click: index = %d, want 1", m.Index())
	}
	if !m.HandleClick(400, 300) {
		t.Error("center click should be consumed")
	}
	if m.IsActive() {
		t.Error("center click should close the viewer")
	}
}

// TestPhotoViewerModule_SetPhotos 测试照片列表缩短后关闭
func TestPhotoViewerModule_SetPhotos(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewPhotoViewerModule(em, testPhotos(3), nil, 800, 600)
	m.Open(2)

	m.SetPhotos(testPhotos(2))
	if m.IsActive() {
		t.Error("viewer should close when its photo disappears")
	}
}

// TestPhotoViewerModule_Cleanup 测试清理
func TestPhotoViewerModule_Cleanup(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewPhotoViewerModule(em, testPhotos(1), nil, 800, 600)
	m.Cleanup()
	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Errorf("EntityCount = %d after Cleanup, want 0", em.EntityCount())
	}
}

// TestPhotoViewerModule_Fade 测试打开时的淡入
func TestPhotoViewerModule_Fade(t *testing.T) {
	em := ecs.NewEntityManager()
	m := NewPhotoViewerModule(em, testPhotos(2), nil, 800, 600)

	m.Update(1)
	if a := m.Alpha(); a != 0 {
		t.Errorf("Alpha while closed = %v, want 0", a)
	}

	m.Open(0)
	m.Update(viewerFadeTime / 2)
	if a := m.Alpha(); a < 0.49 || a > 0.51 {
		t.Errorf("Alpha at half fade = %v, want 0.5", a)
	}
	m.Update(viewerFadeTime)
	if a := m.Alpha(); a != 1 {
		t.Errorf("Alpha after fade = %v, want 1", a)
	}

	// 已打开时翻页不重新淡入
	m.Open(1)
	if a := m.Alpha(); a != 1 {
		t.Errorf("Alpha after switching photo = %v, want 1", a)
	}
}
