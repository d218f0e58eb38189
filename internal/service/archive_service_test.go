package service

import (
	"testing"
	"time"

	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveYearsGroupsByPublishYear(t *testing.T) {
	resetTables(t)
	s := NewArchiveService()

	mustCreateArticle(t, publishedArticle("a-2022", time.Date(2022, 5, 1, 0, 0, 0, 0, time.Local)))
	mustCreateArticle(t, publishedArticle("a-2024-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)))
	mustCreateArticle(t, publishedArticle("a-2024-2", time.Date(2024, 11, 30, 0, 0, 0, 0, time.Local)))

	// 草稿不参与统计，即使带有发布时间
	draft := publishedArticle("a-draft", time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local))
	draft.Status = model.ArticleStatusDraft
	mustCreateArticle(t, draft)

	// 发布时间为空的行排除
	mustCreateArticle(t, &model.Article{Slug: "a-null", Title: "无时间戳", Status: model.ArticleStatusPublished})

	years, err := s.Years()
	require.NoError(t, err)
	require.Len(t, years, 2)

	// 年份降序
	assert.Equal(t, 2024, years[0].Year)
	assert.EqualValues(t, 2, years[0].Count)
	assert.Equal(t, 2022, years[1].Year)
	assert.EqualValues(t, 1, years[1].Count)
}

func TestArchiveYearsEmptyDatabase(t *testing.T) {
	resetTables(t)
	s := NewArchiveService()

	years, err := s.Years()
	require.NoError(t, err)
	assert.Empty(t, years)
}
