package service

import (
	"errors"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/model"
	"yatube-go/internal/repository"
	"yatube-go/pkg/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameExists    = errors.New("用户名已存在")
	ErrInvalidCredential = errors.New("用户名或密码错误")
	ErrPasswordMismatch  = errors.New("原密码输入错误")
	ErrSessionRevoked    = errors.New("会话已失效，请重新登录")
)

type AuthService struct {
	userRepo repository.UserStore
	tokens   *utils.TokenIssuer
}

func NewAuthService(userRepo repository.UserStore, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register 用户注册；表单错误以 validation.Errors 返回
func (s *AuthService) Register(form dto.SignupForm) (*model.User, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(form.Username); err == nil {
		return nil, validation.Errors{"username": ErrUsernameExists}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(form.Password1)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName:  form.Username,
		Password:  hashedPassword,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}
	if err := s.userRepo.Create(user); err != nil {
		// 并发注册同名用户由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validation.Errors{"username": ErrUsernameExists}
		}
		return nil, err
	}

	return user, nil
}

// Authenticate 校验用户名和密码
func (s *AuthService) Authenticate(form dto.LoginForm) (*model.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(form.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(form.Password, user.Password) {
		return nil, ErrInvalidCredential
	}
	return user, nil
}

// IssueToken 为用户签发会话 Token，绑定当前会话版本
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return s.tokens.Generate(user.ID, user.TokenVersion)
}

// UserFromToken 解析 Token 并加载用户；修改密码前签发的 Token 不再有效
func (s *AuthService) UserFromToken(token string) (*model.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.GetUser(claims.UserID)
	if err != nil {
		return nil, err
	}
	if claims.Version != user.TokenVersion {
		return nil, ErrSessionRevoked
	}
	return user, nil
}

// GetUser 根据用户 ID 获取用户
func (s *AuthService) GetUser(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword 修改密码，需要提供原密码
func (s *AuthService) ChangePassword(user *model.User, form dto.PasswordChangeForm) error {
	if err := form.Validate(); err != nil {
		return err
	}
	if !utils.VerifyPassword(form.OldPassword, user.Password) {
		return validation.Errors{"old_password": ErrPasswordMismatch}
	}

	hashedPassword, err := utils.HashPassword(form.NewPassword1)
	if err != nil {
		return err
	}
	version, err := s.userRepo.UpdatePassword(user.ID, hashedPassword)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	user.Password = hashedPassword
	user.TokenVersion = version
	return nil
}
