// Package internal 数据访问层内部共享的辅助函数
package internal

import (
	"errors"

	"chatlog_server/pkg/errorx"

	"gorm.io/gorm"
)

// WrapDBError 包装数据库错误
// ErrRecordNotFound 映射为 CodeNotFound，其余归为 CodeDBError
func WrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// WrapDBErrorf 同 WrapDBError，消息支持格式化
func WrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}
