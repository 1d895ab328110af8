package chat

import "time"

type Session struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	SessionID string    `gorm:"type:varchar(26);uniqueIndex;not null" json:"session_id"`
	UserID    uint64    `gorm:"index;not null" json:"-"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Session) TableName() string { return "chat_sessions" }

type Message struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID string `gorm:"type:varchar(26);not null;index:idx_chat_msg_user_session_id,priority:2" json:"session_id"`
	UserID    uint64 `gorm:"not null;index:idx_chat_msg_user_session_id,priority:1" json:"-"`
	Role      string `gorm:"type:varchar(16);index;not null" json:"role"`
	Content   string `gorm:"type:text;not null" json:"content"`

	// Assistant messages record where the reply came from and how sure
	// the resolver was; user messages leave both empty.
	Source     string    `gorm:"type:varchar(16)" json:"source,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Message) TableName() string { return "chat_messages" }
