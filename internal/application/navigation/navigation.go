// Package navigation 提供基于角色的视图路由决策
//
// 输入为当前身份与导航片段（如 "#/novel/42"），输出为应渲染的视图。
// 决策为纯同步函数：身份或片段变化时由调用方重新求值，无轮询、无状态。
package navigation

import (
	"strconv"
	"strings"

	"novel-nest-api/internal/domain/entity"
)

// View 视图标识
type View string

const (
	ViewLogin              View = "login"
	ViewHome               View = "home"
	ViewWriterDashboard    View = "writer_dashboard"
	ViewAdminDashboard     View = "admin_dashboard"
	ViewDeveloperDashboard View = "developer_dashboard"
	ViewNovelDetail        View = "novel_detail"
	ViewReader             View = "reader"
)

// Decision 路由决策结果
type Decision struct {
	View View `json:"view"`
	// NovelID 小说详情与阅读视图携带的小说 ID
	NovelID int64 `json:"novel_id,omitempty"`
	// EpisodeID 阅读视图携带的章节 ID
	EpisodeID int64 `json:"episode_id,omitempty"`
}

// route 声明式路由表条目：片段前缀 + 期望的正整数参数个数
type route struct {
	prefix string
	params int
	build  func(ids []int64) Decision
}

// 路由表按声明顺序求值，首个匹配生效
var routes = []route{
	{
		prefix: "novel",
		params: 1,
		build: func(ids []int64) Decision {
			return Decision{View: ViewNovelDetail, NovelID: ids[0]}
		},
	},
	{
		prefix: "read",
		params: 2,
		build: func(ids []int64) Decision {
			return Decision{View: ViewReader, NovelID: ids[0], EpisodeID: ids[1]}
		},
	},
}

// landingViews 角色到落地视图的映射；未知角色安全回退到首页
var landingViews = map[entity.UserRole]View{
	entity.UserRoleReader:    ViewHome,
	entity.UserRoleWriter:    ViewWriterDashboard,
	entity.UserRoleAdmin:     ViewAdminDashboard,
	entity.UserRoleDeveloper: ViewDeveloperDashboard,
}

// Resolve 计算 (身份, 导航片段) 对应的视图
//
// 求值顺序：无身份一律登录视图；路径模式匹配优先于角色分发；
// 其余情况按角色落地。非法片段（非数字、非正数）不报错，回退到角色落地。
func Resolve(user *entity.User, fragment string) Decision {
	if user == nil {
		return Decision{View: ViewLogin}
	}

	if segs, ok := splitFragment(fragment); ok {
		for _, r := range routes {
			if segs[0] != r.prefix || len(segs)-1 != r.params {
				continue
			}
			ids, ok := parseIDs(segs[1:])
			if !ok {
				break // 形如路由但参数非法，回退到角色落地
			}
			return r.build(ids)
		}
	}

	return Decision{View: landingView(user.Role)}
}

// landingView 返回角色的默认落地视图
func landingView(role entity.UserRole) View {
	if v, ok := landingViews[role]; ok {
		return v
	}
	return ViewHome
}

// splitFragment 将 "#/a/b/c" 拆分为非空路径段
func splitFragment(fragment string) ([]string, bool) {
	s := strings.TrimPrefix(fragment, "#")
	s = strings.Trim(s, "/")
	if s == "" {
		return nil, false
	}
	return strings.Split(s, "/"), true
}

// parseIDs 解析路径段为正整数 ID 序列
func parseIDs(segs []string) ([]int64, bool) {
	ids := make([]int64, 0, len(segs))
	for _, seg := range segs {
		id, err := strconv.ParseInt(seg, 10, 64)
		if err != nil || id <= 0 {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
