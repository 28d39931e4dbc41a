package model

import "time"

// 对话消息的角色。
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationTurn 代表对话记录中的单条消息。
// 记录只追加，顺序即插入顺序（id 递增），不保证内容去重。
type ConversationTurn struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	StudentID string    `gorm:"type:varchar(36);index;not null" json:"-"`
	Role      string    `gorm:"type:varchar(16);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
