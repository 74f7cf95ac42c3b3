package domain

import "time"

// ChatMessage is one chat message relayed to a room and durably logged.
type ChatMessage struct {
	ID        string    `json:"id"`
	Room      string    `json:"room"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Room      string    `gorm:"type:varchar(100);index;not null"`
	Sender    string    `gorm:"type:varchar(50);not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain ChatMessage.
func (m *MessageModel) ToDomain() *ChatMessage {
	return &ChatMessage{
		ID:        m.ID,
		Room:      m.Room,
		Sender:    m.Sender,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

// MessageToModel converts domain ChatMessage to MessageModel.
func MessageToModel(msg *ChatMessage) *MessageModel {
	return &MessageModel{
		ID:        msg.ID,
		Room:      msg.Room,
		Sender:    msg.Sender,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}
