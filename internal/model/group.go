package model

// Group 帖子所属社区
type Group struct {
	ID          int64  `gorm:"primaryKey;autoIncrement;comment:社区标识" json:"id"`
	Title       string `gorm:"size:200;not null;comment:名称" json:"title"`
	Slug        string `gorm:"size:100;not null;uniqueIndex;comment:地址" json:"slug"`
	Description string `gorm:"type:text;comment:描述" json:"description"`

	Posts []Post `gorm:"foreignKey:GroupID" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

func (g Group) String() string {
	return g.Title
}
