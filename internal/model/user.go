package model

import "time"

// User 用户模型
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	UserName  string    `gorm:"size:150;not null;uniqueIndex;comment:用户名" json:"user_name"`
	Password  string    `gorm:"size:255;not null;comment:密码哈希" json:"-"`
	FirstName string    `gorm:"size:150;comment:名" json:"first_name"`
	LastName  string    `gorm:"size:150;comment:姓" json:"last_name"`
	Email     string    `gorm:"size:254;comment:邮箱" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:注册时间" json:"created_at"`

	// 修改密码时递增，旧版本签发的 Token 随之失效
	TokenVersion int `gorm:"not null;default:0;comment:会话版本" json:"-"`

	// 关联关系
	Posts    []Post    `gorm:"foreignKey:AuthorID" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// FullName 展示名，未填写姓名时退回用户名
func (u User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.UserName
	}
	return name
}
