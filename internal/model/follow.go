package model

import "time"

// Follow 关注关系：UserID 关注 AuthorID，(user_id, author_id) 唯一
type Follow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:关注关系ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_follows_user_author;index:idx_follows_user_id;comment:粉丝用户ID" json:"user_id"`
	AuthorID  int64     `gorm:"not null;uniqueIndex:uq_follows_user_author;index:idx_follows_author_id;comment:被关注作者ID" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:关注时间" json:"created_at"`

	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
