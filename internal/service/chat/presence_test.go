package chat

import "testing"

func TestRegistryRegisterOverwrite(t *testing.T) {
	registry := NewPresenceRegistry()
	h1 := NewUserConn(nil, "U1", 4)
	h2 := NewUserConn(nil, "U1", 4)

	if old := registry.Register("U1", h1); old != nil {
		t.Fatalf("首次注册不应返回旧连接")
	}
	old := registry.Register("U1", h2)
	if old != h1 {
		t.Fatalf("重复注册应返回被覆盖的旧连接")
	}
	if got := registry.Lookup("U1"); got != h2 {
		t.Fatalf("lookup 应返回后注册的连接")
	}
}

func TestRegistryStaleUnregister(t *testing.T) {
	registry := NewPresenceRegistry()
	h1 := NewUserConn(nil, "U1", 4)
	h2 := NewUserConn(nil, "U1", 4)

	registry.Register("U1", h1)
	registry.Register("U1", h2)

	// 旧连接的延迟断开不能误删新连接
	if registry.Unregister("U1", h1) {
		t.Fatalf("过期句柄的注销不应移除条目")
	}
	if got := registry.Lookup("U1"); got != h2 {
		t.Fatalf("过期注销后新连接应保持在线")
	}

	if !registry.Unregister("U1", h2) {
		t.Fatalf("当前句柄的注销应移除条目")
	}
	if got := registry.Lookup("U1"); got != nil {
		t.Fatalf("注销后 lookup 应返回 nil")
	}
}

func TestRegistryLookupAbsent(t *testing.T) {
	registry := NewPresenceRegistry()
	if got := registry.Lookup("nobody"); got != nil {
		t.Fatalf("未注册身份的 lookup 应返回 nil")
	}
}

func TestRegistryDrain(t *testing.T) {
	registry := NewPresenceRegistry()
	registry.Register("U1", NewUserConn(nil, "U1", 4))
	registry.Register("U2", NewUserConn(nil, "U2", 4))

	conns := registry.Drain()
	if len(conns) != 2 {
		t.Fatalf("Drain 应返回全部连接，got %d", len(conns))
	}
	if registry.Count() != 0 {
		t.Fatalf("Drain 后注册表应为空")
	}
}

func TestUserConnPushAfterClose(t *testing.T) {
	conn := NewUserConn(nil, "U1", 1)
	conn.Close()
	conn.Close() // 重复关闭应安全

	if conn.Push(&MessageBack{Message: []byte("x")}) {
		t.Fatalf("关闭后的 Push 应返回 false")
	}
}

func TestUserConnPushFullChannel(t *testing.T) {
	conn := NewUserConn(nil, "U1", 1)
	if !conn.Push(&MessageBack{Message: []byte("a")}) {
		t.Fatalf("缓冲未满时 Push 应成功")
	}
	if conn.Push(&MessageBack{Message: []byte("b")}) {
		t.Fatalf("缓冲已满时 Push 应返回 false")
	}
}
