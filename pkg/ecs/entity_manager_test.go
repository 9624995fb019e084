package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testTransformComponent struct {
	X, Y, Z float64
}

type testOrbitComponent struct {
	Radius, Speed float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestEntityIDsAreNotReused(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	em.DestroyEntity(id1)
	em.RemoveMarkedEntities()

	id2 := em.CreateEntity()
	if id2 == id1 {
		t.Errorf("Destroyed ID %d must not be reused", id1)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	tr := &testTransformComponent{X: 1, Y: 2, Z: -8}
	em.AddComponent(id, tr)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testTransformComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testTransformComponent)
	if retrieved.X != 1 || retrieved.Y != 2 || retrieved.Z != -8 {
		t.Errorf("Component data mismatch, expected (1, 2, -8), got (%f, %f, %f)", retrieved.X, retrieved.Y, retrieved.Z)
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testOrbitComponent{Radius: 3, Speed: 0.5})

	// 泛型版本与反射版本应访问同一份数据
	orbit, ok := GetComponent[*testOrbitComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if orbit.Radius != 3 {
		t.Errorf("Radius: got %v, want 3", orbit.Radius)
	}
	if !em.HasComponent(id, reflect.TypeOf(&testOrbitComponent{})) {
		t.Error("Reflection HasComponent should see generic AddComponent")
	}

	RemoveComponent[*testOrbitComponent](em, id)
	if HasComponent[*testOrbitComponent](em, id) {
		t.Error("Component should be removed")
	}

	// 不存在的实体
	if _, ok := GetComponent[*testOrbitComponent](em, 999); ok {
		t.Error("Unknown entity should not have components")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testTransformComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在，但已不再存活
	if !em.HasComponent(id, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}
	if em.IsAlive(id) {
		t.Error("Entity marked for destruction should not be alive")
	}
	if !em.IsPendingDestroy(id) {
		t.Error("Entity should be pending destruction")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testTransformComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsPendingDestroy(id) {
		t.Error("Pending mark should be cleared after cleanup")
	}
}

func TestDestroyEntityTwice(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)
	if len(em.entitiesToDestroy) != 1 {
		t.Errorf("Entity should be queued once, got %d", len(em.entitiesToDestroy))
	}

	// 未知实体不会入队
	em.DestroyEntity(12345)
	if len(em.entitiesToDestroy) != 1 {
		t.Errorf("Unknown entity should not be queued, got %d", len(em.entitiesToDestroy))
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testTransformComponent{})
	em.AddComponent(id1, &testOrbitComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testTransformComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testOrbitComponent{})

	// 查询拥有 Transform+Orbit 的实体
	entities := GetEntitiesWith2[*testTransformComponent, *testOrbitComponent](em)
	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}
	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	// 查询只拥有 Transform 的实体
	trEntities := GetEntitiesWith1[*testTransformComponent](em)
	if len(trEntities) != 2 {
		t.Errorf("Expected 2 entities with Transform component, got %d", len(trEntities))
	}
}

func TestGetEntitiesWithIsSorted(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testTransformComponent{})
	}

	ids := GetEntitiesWith1[*testTransformComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs not sorted at %d: %d >= %d", i, ids[i-1], ids[i])
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testTransformComponent{})
	em.AddComponent(id2, &testTransformComponent{})
	em.AddComponent(id3, &testTransformComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	if em.IsAlive(id1) {
		t.Error("id1 should be removed")
	}
	if !em.IsAlive(id2) {
		t.Error("id2 should still exist")
	}
	if em.IsAlive(id3) {
		t.Error("id3 should be removed")
	}
	if em.EntityCount() != 1 {
		t.Errorf("EntityCount: got %d, want 1", em.EntityCount())
	}
}
