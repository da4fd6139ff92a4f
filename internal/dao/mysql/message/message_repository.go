package message

import (
	"chatlog_server/internal/dao/mysql/internal"
	"chatlog_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) *messageRepository {
	return &messageRepository{db: db}
}

// Create 创建新消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return internal.WrapDBErrorf(err, "创建消息 send_id=%s receive_id=%s", message.SendId, message.ReceiveId)
	}
	return nil
}

// FindByUserIds 查找两个用户之间的全部私聊消息，按创建时间升序
func (r *messageRepository) FindByUserIds(userOneId, userTwoId string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("(send_id = ? AND receive_id = ?) OR (send_id = ? AND receive_id = ?)",
			userOneId, userTwoId, userTwoId, userOneId).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, internal.WrapDBErrorf(err, "查询消息 %s - %s", userOneId, userTwoId)
	}
	return messages, nil
}

// UpdateStatus 更新消息投递状态
func (r *messageRepository) UpdateStatus(uuid int64, status int8) error {
	err := r.db.Model(&model.Message{}).
		Where("uuid = ?", uuid).
		Update("status", status).Error
	if err != nil {
		return internal.WrapDBErrorf(err, "更新消息状态 uuid=%d", uuid)
	}
	return nil
}

// FindPartnerIds 查找某用户有过消息往来的全部对端 UUID（去重）
func (r *messageRepository) FindPartnerIds(userId string) ([]string, error) {
	var partners []string
	err := r.db.Model(&model.Message{}).
		Select("DISTINCT IF(send_id = ?, receive_id, send_id)", userId).
		Where("send_id = ? OR receive_id = ?", userId, userId).
		Pluck("partner_id", &partners).Error
	if err != nil {
		return nil, internal.WrapDBErrorf(err, "查询聊天对象 user_id=%s", userId)
	}
	return partners, nil
}
