package db

import "time"

// Post 定义了文章模型。
// Sno 是内部主键，Slug 是对外 URL 标识，两者都不允许重复。
// CreatedAt 由存储层在创建时赋值，编辑不会刷新它；
// 不使用软删除，删除即物理移除。
type Post struct {
	Sno       uint      `gorm:"primaryKey" json:"sno"`
	Title     string    `gorm:"size:50;not null" json:"title"`
	Tagline   string    `gorm:"size:50;not null" json:"tagline"`
	Slug      string    `gorm:"size:21;not null;uniqueIndex" json:"slug"`
	Content   string    `gorm:"size:500;not null" json:"content"`
	ImageURL  string    `gorm:"size:200" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}
