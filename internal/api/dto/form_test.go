package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestPostFormValidate(t *testing.T) {
	tests := []struct {
		name      string
		form      PostForm
		wantField string
	}{
		{name: "text only", form: PostForm{Text: "Тестовый пост"}},
		{name: "with group", form: PostForm{Text: "x", Group: "3"}},
		{name: "with image", form: PostForm{Text: "x", Image: smallGIF}},
		{name: "empty text", form: PostForm{Text: "   "}, wantField: "text"},
		{name: "bad group", form: PostForm{Text: "x", Group: "abc"}, wantField: "group"},
		{name: "bad image", form: PostForm{Text: "x", Image: []byte("not an image")}, wantField: "image"},
		{name: "group overflows int64", form: PostForm{Text: "x", Group: "99999999999999999999"}, wantField: "group"},
		{name: "negative group", form: PostForm{Text: "x", Group: "-1"}, wantField: "group"},
		{name: "truncated image", form: PostForm{Text: "x", Image: smallGIF[:len(smallGIF)-6]}, wantField: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.form.Normalize()
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			errs := FieldErrors(err)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestPostFormGroupID(t *testing.T) {
	assert.Nil(t, PostForm{}.GroupID())
	id := PostForm{Group: "12"}.GroupID()
	require.NotNil(t, id)
	assert.Equal(t, int64(12), *id)
}

func TestCommentFormValidate(t *testing.T) {
	f := CommentForm{Text: "  "}
	f.Normalize()
	assert.Contains(t, FieldErrors(f.Validate()), "text")

	f = CommentForm{Text: "Тестовый комментарий"}
	f.Normalize()
	assert.NoError(t, f.Validate())

	// 长度按字符计算，5000 个汉字约 15000 字节
	f = CommentForm{Text: strings.Repeat("评", 5000)}
	assert.NoError(t, f.Validate())

	f = CommentForm{Text: strings.Repeat("评", 5001)}
	assert.Contains(t, FieldErrors(f.Validate()), "text")
}

func TestSignupFormValidate(t *testing.T) {
	valid := SignupForm{Username: "leo", Email: "leo@example.com", Password1: "long-enough", Password2: "long-enough"}
	assert.NoError(t, valid.Validate())

	mismatch := valid
	mismatch.Password2 = "different-one"
	assert.Contains(t, FieldErrors(mismatch.Validate()), "password2")

	badName := valid
	badName.Username = "has space"
	assert.Contains(t, FieldErrors(badName.Validate()), "username")

	short := valid
	short.Password1, short.Password2 = "short", "short"
	assert.Contains(t, FieldErrors(short.Validate()), "password1")

	badEmail := valid
	badEmail.Email = "nope"
	assert.Contains(t, FieldErrors(badEmail.Validate()), "email")
}

func TestPasswordChangeFormValidate(t *testing.T) {
	f := PasswordChangeForm{OldPassword: "old", NewPassword1: "new-password", NewPassword2: "new-password"}
	assert.NoError(t, f.Validate())

	f.NewPassword2 = "other-password"
	assert.Contains(t, FieldErrors(f.Validate()), "new_password2")
}

func TestFieldErrorsNonValidation(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Nil(t, FieldErrors(assert.AnError))
}
