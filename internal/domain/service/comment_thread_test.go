package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"novel-nest-api/internal/domain/entity"
)

// mkComment 构造测试评论
func mkComment(id int64, parentID *int64, content string) *entity.Comment {
	return &entity.Comment{
		ID:        id,
		EpisodeID: 1,
		UserID:    1,
		ParentID:  parentID,
		Content:   content,
		CreatedAt: time.Unix(1700000000+id, 0),
	}
}

func pid(id int64) *int64 {
	return &id
}

func TestBuildCommentTree_EmptyInput(t *testing.T) {
	t.Parallel()

	require.Empty(t, BuildCommentTree(nil))
	require.Empty(t, BuildCommentTree([]*entity.Comment{}))
}

func TestBuildCommentTree_FlatListBecomesRoots(t *testing.T) {
	t.Parallel()

	comments := []*entity.Comment{
		mkComment(1, nil, "a"),
		mkComment(2, nil, "b"),
		mkComment(3, nil, "c"),
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 3)
	require.Equal(t, int64(1), tree[0].ID)
	require.Equal(t, int64(2), tree[1].ID)
	require.Equal(t, int64(3), tree[2].ID)
	for _, n := range tree {
		require.Empty(t, n.Replies)
	}
}

func TestBuildCommentTree_RepliesNestUnderParents(t *testing.T) {
	t.Parallel()

	comments := []*entity.Comment{
		mkComment(1, nil, "root"),
		mkComment(2, pid(1), "reply"),
		mkComment(3, pid(2), "reply to reply"),
		mkComment(4, pid(1), "second reply"),
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 1)

	root := tree[0]
	require.Equal(t, int64(1), root.ID)
	require.Len(t, root.Replies, 2)
	require.Equal(t, int64(2), root.Replies[0].ID)
	require.Equal(t, int64(4), root.Replies[1].ID)
	require.Len(t, root.Replies[0].Replies, 1)
	require.Equal(t, int64(3), root.Replies[0].Replies[0].ID)
	require.Equal(t, 4, CountThread(root))
}

func TestBuildCommentTree_OrphanIsDropped(t *testing.T) {
	t.Parallel()

	comments := []*entity.Comment{
		mkComment(1, nil, "root"),
		mkComment(2, pid(99), "orphan"),
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 1)
	require.Equal(t, int64(1), tree[0].ID)
}

func TestBuildCommentTree_OrphanSubtreeIsDropped(t *testing.T) {
	t.Parallel()

	// 2 的父评论不在集合中，3 回复 2：两者都应被丢弃
	comments := []*entity.Comment{
		mkComment(1, nil, "root"),
		mkComment(2, pid(99), "orphan"),
		mkComment(3, pid(2), "reply to orphan"),
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 1)
	require.Equal(t, int64(1), tree[0].ID)
	require.Equal(t, 1, CountThread(tree[0]))
}

func TestBuildCommentTree_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	comments := []*entity.Comment{
		mkComment(1, nil, "root"),
		mkComment(2, pid(1), "reply"),
	}
	origLen := len(comments)
	origFirst := *comments[0]

	first := BuildCommentTree(comments)
	second := BuildCommentTree(comments)

	require.Len(t, comments, origLen)
	require.Equal(t, origFirst, *comments[0])

	// 重复调用产生结构相同的结果
	require.Len(t, second, len(first))
	require.Equal(t, first[0].ID, second[0].ID)
	require.Len(t, second[0].Replies, len(first[0].Replies))
}

func TestBuildCommentTree_PreservesInputOrderAmongSiblings(t *testing.T) {
	t.Parallel()

	comments := []*entity.Comment{
		mkComment(5, nil, "first"),
		mkComment(2, pid(5), "early reply"),
		mkComment(9, nil, "second"),
		mkComment(7, pid(5), "late reply"),
	}

	tree := BuildCommentTree(comments)
	require.Len(t, tree, 2)
	require.Equal(t, int64(5), tree[0].ID)
	require.Equal(t, int64(9), tree[1].ID)
	require.Equal(t, int64(2), tree[0].Replies[0].ID)
	require.Equal(t, int64(7), tree[0].Replies[1].ID)
}
