package service

import (
	"testing"
	"time"

	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesListWithCountOnlyCountsPublished(t *testing.T) {
	resetTables(t)
	s := NewSeriesService()

	series, err := s.Create(&dto.SeriesCreateRequest{Slug: "go-basics", Title: "Go入门"})
	require.NoError(t, err)

	published := publishedArticle("in-series", time.Now())
	published.SeriesID = &series.ID
	mustCreateArticle(t, published)

	draft := &model.Article{Slug: "in-series-draft", Title: "草稿", Status: model.ArticleStatusDraft, SeriesID: &series.ID}
	mustCreateArticle(t, draft)

	rows, err := s.ListWithCount()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "go-basics", rows[0].Slug)
	assert.EqualValues(t, 1, rows[0].ArticleCount)
}

func TestSeriesDeleteUnlinksArticles(t *testing.T) {
	resetTables(t)
	s := NewSeriesService()

	series, err := s.Create(&dto.SeriesCreateRequest{Slug: "to-remove", Title: "将删除"})
	require.NoError(t, err)

	member := publishedArticle("member", time.Now())
	member.SeriesID = &series.ID
	member.SeriesOrder = 3
	mustCreateArticle(t, member)

	require.NoError(t, s.Delete(series.ID))

	// 成员文章保留，但不再指向任何专栏
	var got model.Article
	require.NoError(t, testDB.First(&got, member.ID).Error)
	assert.Nil(t, got.SeriesID)
	assert.Equal(t, 0, got.SeriesOrder)

	var seriesCount int64
	require.NoError(t, testDB.Model(&model.Series{}).Count(&seriesCount).Error)
	assert.Zero(t, seriesCount)

	assert.Error(t, s.Delete(99999))
}

func TestSeriesSlugUniqueness(t *testing.T) {
	resetTables(t)
	s := NewSeriesService()

	_, err := s.Create(&dto.SeriesCreateRequest{Slug: "taken", Title: "已占用"})
	require.NoError(t, err)

	_, err = s.Create(&dto.SeriesCreateRequest{Slug: "taken", Title: "重复"})
	assert.ErrorIs(t, err, ErrSlugConflict)

	other, err := s.Create(&dto.SeriesCreateRequest{Slug: "free", Title: "未占用"})
	require.NoError(t, err)
	_, err = s.Update(other.ID, &dto.SeriesUpdateRequest{Slug: "taken"})
	assert.ErrorIs(t, err, ErrSlugConflict)
}

func TestSeriesLookupReturnsNilWhenMissing(t *testing.T) {
	resetTables(t)
	s := NewSeriesService()

	series, err := s.GetBySlug("nothing")
	require.NoError(t, err)
	assert.Nil(t, series)

	created, err := s.Create(&dto.SeriesCreateRequest{Slug: "exists", Title: "存在"})
	require.NoError(t, err)

	series, err = s.GetByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, series)
	assert.Equal(t, "存在", series.Title)
}
