package service

import (
	"strings"
	"testing"
	"time"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSSGenerate(t *testing.T) {
	resetTables(t)

	origApp := config.GlobalConfig.App
	origFeed := config.GlobalConfig.Feed
	config.GlobalConfig.App.BaseURL = "https://blog.example.com"
	config.GlobalConfig.Feed = config.FeedConfig{
		Title:       "测试博客",
		Description: "订阅测试",
		Limit:       20,
	}
	defer func() {
		config.GlobalConfig.App = origApp
		config.GlobalConfig.Feed = origFeed
	}()

	s := &RSSService{db: testDB, logger: logger.GetSugaredLogger()}

	withExcerpt := publishedArticle("with-excerpt", time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local))
	mustCreateArticle(t, withExcerpt)

	rendered := publishedArticle("rendered", time.Date(2024, 4, 1, 12, 0, 0, 0, time.Local))
	rendered.Excerpt = ""
	rendered.Content = "# 标题\n\n正文段落"
	mustCreateArticle(t, rendered)

	// 草稿不进订阅
	mustCreateArticle(t, &model.Article{Slug: "rss-draft", Title: "草稿", Status: model.ArticleStatusDraft})

	out, err := s.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "<title>测试博客</title>")
	assert.Contains(t, out, "https://blog.example.com/articles/with-excerpt")
	assert.Contains(t, out, "摘要 with-excerpt")
	// 摘要为空时渲染markdown正文
	assert.Contains(t, out, "&lt;h1&gt;标题&lt;/h1&gt;")
	assert.NotContains(t, out, "rss-draft")
}

func TestRSSGenerateWithoutStorage(t *testing.T) {
	s := &RSSService{db: nil, logger: logger.GetSugaredLogger()}
	_, err := s.Generate()
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
