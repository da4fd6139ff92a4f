// Package errorx 提供带业务错误码的错误类型
// Handler 层通过 errors.As 取出错误码并映射为统一响应
package errorx

import (
	"errors"
	"fmt"
)

// CodeError 带业务错误码的错误
// 支持包装底层错误，可被 errors.Is/errors.As 追溯
type CodeError struct {
	Code  int    // 业务错误码
	Msg   string // 面向客户端的错误消息
	cause error  // 被包装的底层错误
}

func (e *CodeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

// Unwrap 暴露底层错误供 errors.Is/errors.As 追溯
func (e *CodeError) Unwrap() error {
	return e.cause
}

// New 创建 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Wrap 包装底层错误并附加业务错误码和消息
func Wrap(err error, code int, msg string) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   msg,
		cause: err,
	}
}

// Wrapf 包装底层错误，消息支持格式化
func Wrapf(err error, code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code:  code,
		Msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// GetCode 从错误链中提取业务错误码
// 不是 CodeError 时按服务繁忙处理
func GetCode(err error) int {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return CodeServerBusy
}

// 业务状态码
const (
	CodeSuccess         = 1000 // 成功
	CodeInvalidParam    = 1001 // 请求参数错误
	CodeUserExist       = 1002 // 用户已存在
	CodeUserNotExist    = 1003 // 用户不存在
	CodeInvalidPassword = 1004 // 密码错误
	CodeServerBusy      = 1005 // 服务繁忙
	CodeUnauthorized    = 1006 // 未授权/认证失败
	CodeNotFound        = 1008 // 资源不存在
	CodeDBError         = 1010 // 数据库错误
	CodeCacheError      = 1011 // 缓存错误

	// 好友关系领域码
	// 预期内的业务结果，不是系统故障
	CodeNoSuchRequest = 1021 // 申请不存在（已被处理或撤回）
	CodeNotFriend     = 1023 // 非好友之间不允许发送消息
)

// 预定义常用错误实例
var (
	ErrInvalidParam = New(CodeInvalidParam, "请求参数错误")
	ErrServerBusy   = New(CodeServerBusy, "服务繁忙")
)
