// Package service 提供领域服务
package service

import (
	"novel-nest-api/internal/domain/entity"
)

// CommentThread 带回复树的评论节点
type CommentThread struct {
	*entity.Comment
	Replies []*CommentThread `json:"replies"`
}

// BuildCommentTree 将扁平的章节评论列表组织为回复森林
//
// 无 ParentID 的评论为根；有 ParentID 的评论递归挂载到其父节点下，
// 保持输入中的相对顺序。父节点不在输入集合中的评论（孤儿）被丢弃，
// 不会提升为根，避免已删除父评论的回复以顶层评论复现。
// 转换是纯函数：不修改输入切片，重复调用产生结构相同的结果。
func BuildCommentTree(comments []*entity.Comment) []*CommentThread {
	nodes := make(map[int64]*CommentThread, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentThread{Comment: c, Replies: []*CommentThread{}}
	}

	roots := make([]*CommentThread, 0, len(comments))
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok {
			// 孤儿：父评论不在集合中，丢弃
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return pruneDetached(roots, nodes, comments)
}

// pruneDetached 移除挂载在孤儿子树下的节点
//
// 挂载阶段把每条评论挂到了内存中的父节点上，但父节点自身可能是
// 被丢弃的孤儿。只有从根可达的节点才保留。
func pruneDetached(roots []*CommentThread, nodes map[int64]*CommentThread, comments []*entity.Comment) []*CommentThread {
	reachable := make(map[int64]bool, len(nodes))
	var mark func(n *CommentThread)
	mark = func(n *CommentThread) {
		reachable[n.ID] = true
		for _, r := range n.Replies {
			mark(r)
		}
	}
	for _, r := range roots {
		mark(r)
	}

	if len(reachable) == len(comments) {
		return roots
	}

	// 极少分支：存在孤儿子树，重建一遍仅含可达节点的森林
	fresh := make(map[int64]*CommentThread, len(reachable))
	for _, c := range comments {
		if reachable[c.ID] {
			fresh[c.ID] = &CommentThread{Comment: c, Replies: []*CommentThread{}}
		}
	}
	out := make([]*CommentThread, 0, len(fresh))
	for _, c := range comments {
		if !reachable[c.ID] {
			continue
		}
		node := fresh[c.ID]
		if c.ParentID == nil {
			out = append(out, node)
			continue
		}
		fresh[*c.ParentID].Replies = append(fresh[*c.ParentID].Replies, node)
	}
	return out
}

// CountThread 统计一棵回复树包含的评论总数
func CountThread(t *CommentThread) int {
	n := 1
	for _, r := range t.Replies {
		n += CountThread(r)
	}
	return n
}
