// Package user_status_enum 定义用户账号状态
package user_status_enum

const (
	NORMAL  int8 = iota // 正常
	DISABLE             // 已禁用
)
