package model

import "time"

// Comment 评论模型，创建后不可修改
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	PostID    int64     `gorm:"not null;index:idx_comments_post_created,priority:1;comment:帖子ID" json:"post_id"`
	AuthorID  int64     `gorm:"not null;index:idx_comments_author_id;comment:评论用户ID" json:"author_id"`
	Text      string    `gorm:"type:text;not null;comment:评论内容" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_post_created,priority:2;comment:评论时间" json:"created_at"`

	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
}

func (Comment) TableName() string {
	return "comments"
}
