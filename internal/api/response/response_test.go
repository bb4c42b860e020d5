package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		write  func(c *gin.Context)
		status int
		typ    string
	}{
		{"bad request", func(c *gin.Context) { BadRequest(c, "请输入搜索关键词") }, http.StatusBadRequest, "BadRequest"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "未登录") }, http.StatusUnauthorized, "Unauthorized"},
		{"not found", func(c *gin.Context) { NotFound(c, "帖子不存在") }, http.StatusNotFound, "NotFound"},
		{"internal", func(c *gin.Context) { InternalError(c, "搜索失败") }, http.StatusInternalServerError, "InternalServerError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.write(c)

			assert.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Error.Code)
			assert.Equal(t, tt.typ, resp.Error.Type)
		})
	}
}
