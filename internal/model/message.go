// Package model 定义数据库实体模型
// 本文件定义消息模型，用于存储单聊消息
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// 消息一旦创建不再修改内容，仅投递状态会更新
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64 类型 ID
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SendId 发送者 UUID
	SendId string `gorm:"column:send_id;index;type:char(20);not null;comment:发送者uuid"`

	// ReceiveId 接收者 UUID
	ReceiveId string `gorm:"column:receive_id;index;type:char(20);not null;comment:接收者uuid"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// Status 消息投递状态
	// 0=未推送, 1=已推送
	// 参见 pkg/enum/message/message_status_enum
	Status int8 `gorm:"column:status;not null;comment:状态，0.未推送，1.已推送"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
