package memory

import (
	"time"

	"github.com/lib/pq"

	"novel-nest-api/internal/domain/entity"
)

// fixturePassword 演示账号的统一明文口令
const fixturePassword = "password123"

// loadFixtures 载入固定演示数据
// 数据内容与 ID 分配完全确定，测试可以直接断言
func (s *Store) loadFixtures() {
	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	users := []*entity.User{
		{Username: "mira", Email: "mira@novelnest.dev", Role: entity.UserRoleReader, Bio: "沉迷长篇连载的读者", CreatedAt: base},
		{Username: "elias", Email: "elias@novelnest.dev", Role: entity.UserRoleWriter, Bio: "奇幻连载作者", CreatedAt: base.Add(time.Hour)},
		{Username: "admin", Email: "admin@novelnest.dev", Role: entity.UserRoleAdmin, CreatedAt: base.Add(2 * time.Hour)},
		{Username: "dev", Email: "dev@novelnest.dev", Role: entity.UserRoleDeveloper, CreatedAt: base.Add(3 * time.Hour)},
		{Username: "june", Email: "june@novelnest.dev", Role: entity.UserRoleWriter, Bio: "科幻短篇写手", CreatedAt: base.Add(4 * time.Hour)},
	}
	for _, u := range users {
		_ = u.SetPassword(fixturePassword)
		s.nextUserID++
		u.ID = s.nextUserID
		s.users[u.ID] = u
	}

	novels := []*entity.Novel{
		{
			Title: "Ashes of the Ninth Gate", Description: "末代守门人追索失落王城的史诗",
			Tags: pq.StringArray{"Fantasy", "Epic"}, Status: entity.NovelStatusOngoing,
			Views: 4210, Likes: 389, Rating: 4.5, AuthorID: 2, LastUpdate: base.Add(48 * time.Hour),
		},
		{
			Title: "The Clockwork Orchard", Description: "机械果园里藏着一座会走路的城市",
			Tags: pq.StringArray{"Fantasy", "Steampunk"}, Status: entity.NovelStatusOngoing,
			Views: 2870, Likes: 245, Rating: 4.0, AuthorID: 2, LastUpdate: base.Add(36 * time.Hour),
		},
		{
			Title: "Signal Decay", Description: "深空中继站收到了三百年前的求救信号",
			Tags: pq.StringArray{"SciFi"}, Status: entity.NovelStatusCompleted,
			Views: 5640, Likes: 512, Rating: 4.8, AuthorID: 5, LastUpdate: base.Add(24 * time.Hour),
		},
		{
			Title: "Salt and Cinders", Description: "海盐商道上的低魔冒险",
			Tags: pq.StringArray{"Fantasy", "Adventure"}, Status: entity.NovelStatusOngoing,
			Views: 1530, Likes: 98, Rating: 3.9, AuthorID: 5, LastUpdate: base.Add(12 * time.Hour),
		},
	}
	for _, n := range novels {
		s.nextNovelID++
		n.ID = s.nextNovelID
		s.novels[n.ID] = n
	}

	episodes := []*entity.Episode{
		{NovelID: 1, Title: "第一章 灰烬中的钥匙", Content: "守门人在废墟里醒来……", ReleaseDate: base.Add(6 * time.Hour)},
		{NovelID: 1, Title: "第二章 无名旅人", Content: "旅人带来了王城的消息……", ReleaseDate: base.Add(30 * time.Hour)},
		{NovelID: 1, Title: "第三章 封印之门", Content: "门后传来低语……", IsLocked: true, Price: 120, ReleaseDate: base.Add(48 * time.Hour)},
		{NovelID: 2, Title: "Chapter 1: The Winding Key", Content: "The orchard ticked awake at dawn...", ReleaseDate: base.Add(8 * time.Hour)},
		{NovelID: 2, Title: "Chapter 2: Brass Roots", Content: "Beneath the soil, gears turned...", ReleaseDate: base.Add(36 * time.Hour)},
		{NovelID: 3, Title: "Transmission 01", Content: "The relay picked up a whisper...", ReleaseDate: base.Add(10 * time.Hour)},
		{NovelID: 3, Title: "Transmission 02", Content: "Three centuries of static broke...", IsLocked: true, Price: 80, ReleaseDate: base.Add(22 * time.Hour)},
		{NovelID: 4, Title: "第一章 盐路", Content: "商队在黎明前出发……", ReleaseDate: base.Add(11 * time.Hour)},
	}
	for _, e := range episodes {
		s.nextEpisodeID++
		e.ID = s.nextEpisodeID
		s.episodes[e.ID] = e
	}

	reviews := []*entity.Review{
		{NovelID: 1, UserID: 1, Rating: 5, Comment: "世界观厚重，期待后续", CreatedAt: base.Add(26 * time.Hour)},
		{NovelID: 1, UserID: 4, Rating: 4, Comment: "节奏稍慢但值得", CreatedAt: base.Add(40 * time.Hour)},
		{NovelID: 3, UserID: 1, Rating: 5, Comment: "结尾反转绝了", CreatedAt: base.Add(30 * time.Hour)},
	}
	for _, r := range reviews {
		s.nextReviewID++
		r.ID = s.nextReviewID
		s.reviews[r.ID] = r
	}

	parent := int64(1)
	comments := []*entity.Comment{
		{EpisodeID: 1, UserID: 1, Content: "开篇气氛拉满", CreatedAt: base.Add(7 * time.Hour)},
		{EpisodeID: 1, UserID: 2, ParentID: &parent, Content: "谢谢支持，周更不断", CreatedAt: base.Add(9 * time.Hour)},
		{EpisodeID: 1, UserID: 4, Content: "钥匙的伏笔记下了", CreatedAt: base.Add(12 * time.Hour)},
		{EpisodeID: 6, UserID: 1, Content: "信号的设定很硬核", CreatedAt: base.Add(14 * time.Hour)},
	}
	for _, c := range comments {
		s.nextCommentID++
		c.ID = s.nextCommentID
		s.comments[c.ID] = c
	}
}
