package service

import (
	"encoding/xml"
	"fmt"
	"sync"
	"time"

	"github.com/hxzhou/blog-platform/internal/config"
	"github.com/hxzhou/blog-platform/internal/database"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/russross/blackfriday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	rssService     *RSSService
	rssServiceOnce sync.Once
)

// RSSService RSS订阅服务
type RSSService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewRSSService 创建RSS订阅服务实例
func NewRSSService() *RSSService {
	rssServiceOnce.Do(func() {
		rssService = &RSSService{
			db:     database.GetDB(),
			logger: logger.GetSugaredLogger(),
		}
	})
	return rssService
}

// rssFeed RSS 2.0文档结构
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Generate 生成最新已发布文章的RSS 2.0订阅文档
func (s *RSSService) Generate() (string, error) {
	if s.db == nil {
		return "", ErrStorageUnavailable
	}

	cfg := config.GetConfig()
	limit := cfg.Feed.Limit
	if limit <= 0 {
		limit = 20
	}

	var articles []model.Article
	err := s.db.Where("status = ?", model.ArticleStatusPublished).
		Order("published_at DESC").Order("id ASC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return "", err
	}

	items := make([]rssItem, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		link := fmt.Sprintf("%s/articles/%s", cfg.App.BaseURL, a.Slug)

		// 摘要为空时渲染正文
		description := a.Excerpt
		if description == "" {
			description = string(blackfriday.MarkdownCommon([]byte(a.Content)))
		}

		pubDate := ""
		if a.PublishedAt != nil {
			pubDate = a.PublishedAt.Format(time.RFC1123Z)
		}

		items = append(items, rssItem{
			Title:       a.Title,
			Link:        link,
			GUID:        link,
			Description: description,
			PubDate:     pubDate,
		})
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:         cfg.Feed.Title,
			Link:          cfg.App.BaseURL,
			Description:   cfg.Feed.Description,
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(output), nil
}
