package service

import (
	"testing"
	"time"

	"github.com/hxzhou/blog-platform/internal/dto"
	"github.com/hxzhou/blog-platform/internal/logger"
	"github.com/hxzhou/blog-platform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustCreateComment 直接落库创建评论
func mustCreateComment(t *testing.T, articleID, userID uint, parentID *uint, status string) *model.Comment {
	t.Helper()
	comment := &model.Comment{
		Content:   "评论内容",
		ArticleID: articleID,
		UserID:    userID,
		ParentID:  parentID,
		Status:    status,
	}
	require.NoError(t, testDB.Create(comment).Error)
	return comment
}

func TestCommentCreateModeration(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	article := mustCreateArticle(t, publishedArticle("moderated", time.Now()))
	user := mustCreateUser(t, "commenter", model.RoleUser)
	admin := mustCreateUser(t, "moderator", model.RoleAdmin)

	// 普通用户的评论进入待审核
	created, err := s.Create(user.ID, model.RoleUser, &dto.CommentCreateRequest{
		Content:   "等待审核",
		ArticleID: article.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CommentStatusPending, created.Status)

	// 管理员评论直接通过
	created, err = s.Create(admin.ID, model.RoleAdmin, &dto.CommentCreateRequest{
		Content:   "直接通过",
		ArticleID: article.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CommentStatusApproved, created.Status)
}

func TestCommentCreateRejectsInvalidTargets(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	user := mustCreateUser(t, "strict-user", model.RoleUser)
	draft := mustCreateArticle(t, &model.Article{Slug: "unpublished", Title: "草稿", Status: model.ArticleStatusDraft})
	published := mustCreateArticle(t, publishedArticle("open", time.Now()))
	other := mustCreateArticle(t, publishedArticle("other", time.Now()))

	// 不存在的文章
	_, err := s.Create(user.ID, model.RoleUser, &dto.CommentCreateRequest{Content: "x", ArticleID: 99999})
	assert.Error(t, err)

	// 非管理员评论未发布文章，错误与文章不存在一致
	_, err = s.Create(user.ID, model.RoleUser, &dto.CommentCreateRequest{Content: "x", ArticleID: draft.ID})
	require.Error(t, err)
	assert.EqualError(t, err, "文章不存在")

	// 管理员可以评论未发布文章
	_, err = s.Create(user.ID, model.RoleAdmin, &dto.CommentCreateRequest{Content: "x", ArticleID: draft.ID})
	assert.NoError(t, err)

	// 父评论不存在
	missing := uint(99999)
	_, err = s.Create(user.ID, model.RoleUser, &dto.CommentCreateRequest{
		Content: "x", ArticleID: published.ID, ParentID: &missing,
	})
	assert.Error(t, err)

	// 父评论必须属于同一篇文章
	parent := mustCreateComment(t, other.ID, user.ID, nil, model.CommentStatusApproved)
	_, err = s.Create(user.ID, model.RoleUser, &dto.CommentCreateRequest{
		Content: "x", ArticleID: published.ID, ParentID: &parent.ID,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "不能回复其他文章的评论")
}

func TestCommentTreeBuilding(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	article := mustCreateArticle(t, publishedArticle("tree", time.Now()))
	user := mustCreateUser(t, "tree-user", model.RoleUser)

	root := mustCreateComment(t, article.ID, user.ID, nil, model.CommentStatusApproved)
	child := mustCreateComment(t, article.ID, user.ID, &root.ID, model.CommentStatusApproved)
	grandchild := mustCreateComment(t, article.ID, user.ID, &child.ID, model.CommentStatusApproved)
	mustCreateComment(t, article.ID, user.ID, nil, model.CommentStatusPending)
	mustCreateComment(t, article.ID, user.ID, &root.ID, model.CommentStatusRejected)

	tree, err := s.ListByArticle(article.ID)
	require.NoError(t, err)
	// 待审核和被拒绝的评论不出现在公开树中
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, child.ID, tree[0].Children[0].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, grandchild.ID, tree[0].Children[0].Children[0].ID)
}

func TestCommentTreePromotesOrphans(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	article := mustCreateArticle(t, publishedArticle("orphan", time.Now()))
	user := mustCreateUser(t, "orphan-user", model.RoleUser)

	// 父评论被拒，已通过的回复提升为根节点
	rejectedParent := mustCreateComment(t, article.ID, user.ID, nil, model.CommentStatusRejected)
	orphan := mustCreateComment(t, article.ID, user.ID, &rejectedParent.ID, model.CommentStatusApproved)

	tree, err := s.ListByArticle(article.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, orphan.ID, tree[0].ID)
	assert.Empty(t, tree[0].Children)
}

func TestCommentSubtreeDeletion(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	article := mustCreateArticle(t, publishedArticle("del-tree", time.Now()))
	user := mustCreateUser(t, "del-user", model.RoleUser)

	root := mustCreateComment(t, article.ID, user.ID, nil, model.CommentStatusApproved)
	child := mustCreateComment(t, article.ID, user.ID, &root.ID, model.CommentStatusApproved)
	mustCreateComment(t, article.ID, user.ID, &child.ID, model.CommentStatusApproved)
	sibling := mustCreateComment(t, article.ID, user.ID, nil, model.CommentStatusApproved)

	// 删除中间节点只带走其子树
	require.NoError(t, s.Delete(child.ID))

	var remaining int64
	require.NoError(t, testDB.Model(&model.Comment{}).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining)

	// 删除根节点带走整棵树
	require.NoError(t, s.Delete(root.ID))
	require.NoError(t, testDB.Model(&model.Comment{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)

	var left model.Comment
	require.NoError(t, testDB.First(&left).Error)
	assert.Equal(t, sibling.ID, left.ID)

	// 删除不存在的评论报错
	assert.Error(t, s.Delete(99999))
}

func TestCommentModerationTransitions(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	article := mustCreateArticle(t, publishedArticle("transitions", time.Now()))
	user := mustCreateUser(t, "trans-user", model.RoleUser)
	comment := mustCreateComment(t, article.ID, user.ID, nil, model.CommentStatusPending)

	require.NoError(t, s.Approve(comment.ID))
	var got model.Comment
	require.NoError(t, testDB.First(&got, comment.ID).Error)
	assert.Equal(t, model.CommentStatusApproved, got.Status)

	require.NoError(t, s.Reject(comment.ID))
	require.NoError(t, testDB.First(&got, comment.ID).Error)
	assert.Equal(t, model.CommentStatusRejected, got.Status)

	assert.Error(t, s.Approve(99999))
}

func TestCommentAdminListFilters(t *testing.T) {
	resetTables(t)
	s := NewCommentService()

	a1 := mustCreateArticle(t, publishedArticle("admin-a", time.Now()))
	a2 := mustCreateArticle(t, publishedArticle("admin-b", time.Now()))
	user := mustCreateUser(t, "admin-list-user", model.RoleUser)

	mustCreateComment(t, a1.ID, user.ID, nil, model.CommentStatusPending)
	mustCreateComment(t, a1.ID, user.ID, nil, model.CommentStatusApproved)
	mustCreateComment(t, a2.ID, user.ID, nil, model.CommentStatusPending)

	all, err := s.ListAdmin(&dto.CommentAdminListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)

	byArticle, err := s.ListAdmin(&dto.CommentAdminListRequest{ArticleID: a1.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, byArticle.Total)

	pending, err := s.ListPending(1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pending.Total)
	for _, item := range pending.List {
		assert.Equal(t, model.CommentStatusPending, item.Status)
	}
}

func TestCommentServiceDegradesWithoutStorage(t *testing.T) {
	s := &CommentService{db: nil, logger: logger.GetSugaredLogger()}

	tree, err := s.ListByArticle(1)
	require.NoError(t, err)
	assert.Empty(t, tree)

	_, err = s.Create(1, model.RoleUser, &dto.CommentCreateRequest{Content: "x", ArticleID: 1})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, s.Delete(1), ErrStorageUnavailable)
	assert.ErrorIs(t, s.Approve(1), ErrStorageUnavailable)
}
