// Package chat 实现实时层的核心服务
// presence.go
// 核心职责：在线状态注册表，身份 -> 活跃连接 的唯一映射
package chat

import "sync"

// PresenceRegistry 在线状态注册表
// 所有访问都经过内部互斥锁，映射表不对外暴露。
// 同一身份重复注册时新连接覆盖旧连接（后登录者生效），
// 注销绑定到具体的连接句柄：断线回调携带自己的句柄，
// 如果该身份已被新连接占据则不做任何事（防止旧连接的
// 延迟断开误删新连接）。
type PresenceRegistry struct {
	mu    sync.RWMutex
	conns map[string]*UserConn
}

// NewPresenceRegistry 创建注册表实例
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		conns: make(map[string]*UserConn),
	}
}

// Register 注册连接，返回被覆盖的旧连接（没有则为 nil）
// 旧连接的关闭由调用方负责
func (r *PresenceRegistry) Register(uuid string, conn *UserConn) *UserConn {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.conns[uuid]
	r.conns[uuid] = conn
	if old == conn {
		return nil
	}
	return old
}

// Lookup 查找某身份的活跃连接，不在线返回 nil
func (r *PresenceRegistry) Lookup(uuid string) *UserConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[uuid]
}

// Unregister 注销连接，仅当当前登记的就是该句柄时才移除
// 返回是否真正移除了条目
func (r *PresenceRegistry) Unregister(uuid string, conn *UserConn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns[uuid] != conn {
		return false
	}
	delete(r.conns, uuid)
	return true
}

// Drain 清空注册表并返回全部连接，用于服务器关闭
func (r *PresenceRegistry) Drain() []*UserConn {
	r.mu.Lock()
	defer r.mu.Unlock()
	conns := make([]*UserConn, 0, len(r.conns))
	for _, conn := range r.conns {
		conns = append(conns, conn)
	}
	r.conns = make(map[string]*UserConn)
	return conns
}

// Count 当前在线连接数
func (r *PresenceRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
