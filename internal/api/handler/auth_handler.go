package handler

import (
	"errors"
	"net/http"
	"time"

	"yatube-go/internal/api/dto"
	"yatube-go/internal/api/middleware"
	"yatube-go/internal/model"
	"yatube-go/internal/service"
	"yatube-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionOptions 会话 Cookie 设置
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type AuthHandler struct {
	authService *service.AuthService
	session     SessionOptions
}

func NewAuthHandler(authService *service.AuthService, session SessionOptions) *AuthHandler {
	return &AuthHandler{authService: authService, session: session}
}

// SignupForm 注册页
func (h *AuthHandler) SignupForm(c *gin.Context) {
	render(c, http.StatusOK, "users/signup.html", gin.H{"Form": dto.SignupForm{}})
}

// Signup 注册成功后直接登录并跳转到首页
func (h *AuthHandler) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, "users/signup.html", gin.H{"Form": form})
		return
	}

	user, err := h.authService.Register(form)
	if err != nil {
		if errs := dto.FieldErrors(err); errs != nil {
			form.Password1, form.Password2 = "", ""
			render(c, http.StatusOK, "users/signup.html", gin.H{"Form": form, "Errors": errs})
			return
		}
		serverError(c, err)
		return
	}

	logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", user.UserName))
	if err := h.startSession(c, user); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// LoginForm 登录页，next 原样带回表单
func (h *AuthHandler) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "users/login.html", gin.H{
		"Form": dto.LoginForm{},
		"Next": c.Query("next"),
	})
}

// Login 登录成功后跳转到 next（仅站内地址），否则回到首页
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	_ = c.ShouldBind(&form)

	user, err := h.authService.Authenticate(form)
	if err != nil {
		data := gin.H{"Form": dto.LoginForm{Username: form.Username}, "Next": form.Next}
		switch {
		case dto.FieldErrors(err) != nil:
			data["Errors"] = dto.FieldErrors(err)
		case errors.Is(err, service.ErrInvalidCredential):
			data["Error"] = err.Error()
		default:
			serverError(c, err)
			return
		}
		render(c, http.StatusOK, "users/login.html", data)
		return
	}

	if err := h.startSession(c, user); err != nil {
		serverError(c, err)
		return
	}
	c.Redirect(http.StatusFound, middleware.SafeNext(form.Next))
}

// Logout 清除会话
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, "", -1, "/", "", h.session.Secure, true)
	// 本次请求已经退出，页头按匿名用户显示
	c.Set(middleware.ContextKeyUser, (*model.User)(nil))
	render(c, http.StatusOK, "users/logged_out.html", nil)
}

// PasswordChangeForm 修改密码页
func (h *AuthHandler) PasswordChangeForm(c *gin.Context) {
	render(c, http.StatusOK, "users/password_change_form.html", nil)
}

// PasswordChange 修改密码，成功后跳转到完成页
func (h *AuthHandler) PasswordChange(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	var form dto.PasswordChangeForm
	_ = c.ShouldBind(&form)

	if err := h.authService.ChangePassword(user, form); err != nil {
		if errs := dto.FieldErrors(err); errs != nil {
			render(c, http.StatusOK, "users/password_change_form.html", gin.H{"Errors": errs})
			return
		}
		serverError(c, err)
		return
	}

	// 旧 Token 已失效，当前会话换发新 Token
	if err := h.startSession(c, user); err != nil {
		serverError(c, err)
		return
	}

	logger.Info("Password changed", zap.Int64("user_id", user.ID))
	c.Redirect(http.StatusFound, "/auth/password_change/done/")
}

func (h *AuthHandler) startSession(c *gin.Context, user *model.User) error {
	token, err := h.authService.IssueToken(user)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.CookieName, token, int(h.session.TTL.Seconds()), "/", "", h.session.Secure, true)
	return nil
}
