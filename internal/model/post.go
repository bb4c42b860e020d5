package model

import "time"

// DisplayTextLength 帖子展示名截取的字符数
const DisplayTextLength = 15

// Post 帖子模型
type Post struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:帖子标识" json:"id"`
	Text      string    `gorm:"type:text;not null;comment:帖子正文" json:"text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_posts_created_at;comment:发布时间" json:"created_at"`
	AuthorID  int64     `gorm:"not null;index:idx_posts_author_id;comment:作者ID" json:"author_id"`
	GroupID   *int64    `gorm:"index:idx_posts_group_id;comment:社区ID" json:"group_id"`
	Image     string    `gorm:"size:255;comment:图片对象名" json:"image,omitempty"`

	// 关联关系；删除社区时帖子保留，group_id 置空
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// String 返回正文前 15 个字符
func (p Post) String() string {
	runes := []rune(p.Text)
	if len(runes) <= DisplayTextLength {
		return p.Text
	}
	return string(runes[:DisplayTextLength])
}
