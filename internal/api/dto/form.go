package dto

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"yatube-go/internal/media"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// FieldErrors 把 ozzo 的校验错误展开成 字段 -> 提示，模板按字段显示
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out
}

// PostForm 发帖/编辑帖子表单
type PostForm struct {
	Text  string `form:"text" json:"text"`
	Group string `form:"group" json:"group"` // 社区 ID，空表示不选
	Image []byte `form:"-" json:"image"`
}

func (f *PostForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
	f.Group = strings.TrimSpace(f.Group)
}

func (f PostForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text,
			validation.Required.Error("请填写帖子内容"),
		),
		validation.Field(&f.Group,
			validation.When(f.Group != "", validation.By(groupIDRule)),
		),
		validation.Field(&f.Image,
			validation.By(media.ValidateImage),
		),
	)
}

var errGroupID = errors.New("请选择正确的社区")

// groupIDRule 社区 ID 必须是合法的 int64，溢出也按无效处理
func groupIDRule(value interface{}) error {
	s, _ := value.(string)
	if id, err := strconv.ParseInt(s, 10, 64); err != nil || id <= 0 {
		return errGroupID
	}
	return nil
}

// GroupID 解析社区 ID，未选择时返回 nil；需在 Validate 之后调用
func (f PostForm) GroupID() *int64 {
	if f.Group == "" {
		return nil
	}
	id, err := strconv.ParseInt(f.Group, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// CommentForm 评论表单
type CommentForm struct {
	Text string `form:"text" json:"text"`
}

func (f *CommentForm) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
}

func (f CommentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Text,
			validation.Required.Error("请填写评论内容"),
			validation.RuneLength(1, 5000).Error("评论不能超过 5000 个字符"),
		),
	)
}

// LoginForm 登录表单
type LoginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next"`
}

func (f LoginForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Username, validation.Required.Error("请输入用户名")),
		validation.Field(&f.Password, validation.Required.Error("请输入密码")),
	)
}

// SignupForm 注册表单
type SignupForm struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Username  string `form:"username" json:"username"`
	Email     string `form:"email" json:"email"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
}

func (f *SignupForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)
}

func (f SignupForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName, validation.Length(0, 150)),
		validation.Field(&f.LastName, validation.Length(0, 150)),
		validation.Field(&f.Username,
			validation.Required.Error("请输入用户名"),
			validation.RuneLength(1, 150).Error("用户名不能超过 150 个字符"),
			validation.Match(usernamePattern).Error("用户名只能包含字母、数字和 @/./+/-/_"),
		),
		validation.Field(&f.Email,
			validation.When(f.Email != "", is.Email.Error("请输入正确的邮箱地址")),
		),
		validation.Field(&f.Password1,
			validation.Required.Error("请输入密码"),
			validation.Length(8, 128).Error("密码长度需在 8 到 128 个字符之间"),
		),
		validation.Field(&f.Password2,
			validation.Required.Error("请再次输入密码"),
			validation.By(sameAs(f.Password1)),
		),
	)
}

// PasswordChangeForm 修改密码表单
type PasswordChangeForm struct {
	OldPassword  string `form:"old_password" json:"old_password"`
	NewPassword1 string `form:"new_password1" json:"new_password1"`
	NewPassword2 string `form:"new_password2" json:"new_password2"`
}

func (f PasswordChangeForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.OldPassword, validation.Required.Error("请输入原密码")),
		validation.Field(&f.NewPassword1,
			validation.Required.Error("请输入新密码"),
			validation.Length(8, 128).Error("密码长度需在 8 到 128 个字符之间"),
		),
		validation.Field(&f.NewPassword2,
			validation.Required.Error("请再次输入新密码"),
			validation.By(sameAs(f.NewPassword1)),
		),
	)
}

func sameAs(expected string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New("两次输入的密码不一致")
		}
		return nil
	}
}
