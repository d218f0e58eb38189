package service

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		App: config.AppConfig{
			Name:        "blog-platform-test",
			OwnerOpenID: "owner-open-id",
		},
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

	testDB = db
	database.SetDB(db)

	os.Exit(m.Run())
}

// resetTables 清空全部业务表，保证用例互不影响
func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"comments", "article_tags", "articles", "tags", "series", "users"} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
}

// mustCreateUser 创建用户
func mustCreateUser(t *testing.T, openID, role string) *model.User {
	t.Helper()
	user := &model.User{
		OpenID:       openID,
		Nickname:     "用户" + openID,
		Role:         role,
		LastSignedIn: time.Now(),
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// mustCreateArticle 直接落库创建文章
func mustCreateArticle(t *testing.T, article *model.Article) *model.Article {
	t.Helper()
	if article.AuthorID == 0 {
		author := mustCreateUser(t, "author-"+article.Slug, model.RoleAdmin)
		article.AuthorID = author.ID
	}
	require.NoError(t, testDB.Create(article).Error)
	return article
}

// mustCreateTag 创建标签
func mustCreateTag(t *testing.T, slug, name string) *model.Tag {
	t.Helper()
	tag := &model.Tag{Slug: slug, Name: name}
	require.NoError(t, testDB.Create(tag).Error)
	return tag
}

// mustLinkTag 建立文章标签关联
func mustLinkTag(t *testing.T, articleID, tagID uint) {
	t.Helper()
	require.NoError(t, testDB.Create(&model.ArticleTag{ArticleID: articleID, TagID: tagID}).Error)
}

// timeRef 时间字面量转指针
func timeRef(t time.Time) *time.Time {
	return &t
}

// publishedArticle 构造一篇已发布文章
func publishedArticle(slug string, publishedAt time.Time) *model.Article {
	return &model.Article{
		Slug:        slug,
		Title:       "标题 " + slug,
		Excerpt:     "摘要 " + slug,
		Content:     "正文 " + slug,
		Status:      model.ArticleStatusPublished,
		PublishedAt: timeRef(publishedAt),
	}
}
