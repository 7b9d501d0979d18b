package db

import "time"

// ContactMessage 保存一条来访者通过联系表单提交的留言。
// 只追加写入，应用内不修改也不删除。
// ReceivedAt 由存储层在提交时赋值。
type ContactMessage struct {
	Sno        uint      `gorm:"primaryKey" json:"sno"`
	Name       string    `gorm:"size:50;not null" json:"name"`
	Email      string    `gorm:"size:50;not null" json:"email"`
	Phone      string    `gorm:"size:15;not null" json:"phone"`
	Message    string    `gorm:"size:120;not null" json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

// TableName 返回自定义表名，避免复数化出错
func (ContactMessage) TableName() string {
	return "contact_messages"
}
