package controller_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/hxzhou/blog-platform/internal/router"
	"github.com/hxzhou/blog-platform/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testRouter *gin.Engine

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:            "test-secret",
			AccessExpireSeconds:  3600,
			RefreshExpireSeconds: 7200,
			Issuer:               "blog-platform-test",
		},
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("打开测试数据库失败: %v\n", err)
		os.Exit(1)
	}
	if err := model.InitTables(db); err != nil {
		fmt.Printf("初始化测试数据库表失败: %v\n", err)
		os.Exit(1)
	}
	database.SetDB(db)

	testRouter = gin.New()
	router.Setup(testRouter)

	os.Exit(m.Run())
}

func TestTagCreateSlugConflictReturns409(t *testing.T) {
	pair, err := auth.GenerateTokenPair(1, model.RoleAdmin)
	require.NoError(t, err)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/tags", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		testRouter.ServeHTTP(w, req)
		return w
	}

	w := post(`{"slug":"dup-slug","name":"第一个"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 重复slug是客户端可修复的冲突，不是服务端错误
	w = post(`{"slug":"dup-slug","name":"第二个"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "slug已被占用")
}
