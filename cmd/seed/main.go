// Package main 数据库初始化与演示数据导入
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"novel-nest-api/internal/config"
	"novel-nest-api/internal/domain/entity"
	"novel-nest-api/internal/infrastructure/persistence/postgres"
	"novel-nest-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx := context.Background()

	pg, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to connect postgres", err)
	}
	defer pg.Close()

	if err := pg.Migrate(); err != nil {
		logger.Fatal(ctx, "failed to migrate schema", err)
	}
	logger.Info(ctx, "schema migrated")

	if err := seed(ctx, pg); err != nil {
		logger.Fatal(ctx, "failed to seed data", err)
	}
	logger.Info(ctx, "seed data loaded")
}

// seed 导入演示数据，已有用户时跳过避免重复导入
func seed(ctx context.Context, pg *postgres.Client) error {
	users := postgres.NewUserRepository(pg)
	novels := postgres.NewNovelRepository(pg)
	episodes := postgres.NewEpisodeRepository(pg)
	reviews := postgres.NewReviewRepository(pg)
	comments := postgres.NewCommentRepository(pg)

	existing, err := users.GetByUsername(ctx, "elias")
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Info(ctx, "seed data already present, skipping")
		return nil
	}

	mira := entity.NewUser("mira", "mira@novelnest.dev")
	elias := entity.NewUser("elias", "elias@novelnest.dev")
	elias.Role = entity.UserRoleWriter
	admin := entity.NewUser("admin", "admin@novelnest.dev")
	admin.Role = entity.UserRoleAdmin
	for _, u := range []*entity.User{mira, elias, admin} {
		if err := u.SetPassword("password123"); err != nil {
			return err
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}

	ashes := &entity.Novel{
		Title:       "Ashes of the Ninth Gate",
		Description: "末代守门人追索失落王城的史诗",
		Tags:        pq.StringArray{"Fantasy", "Epic"},
		Status:      entity.NovelStatusOngoing,
		Likes:       389,
		AuthorID:    elias.ID,
		LastUpdate:  time.Now(),
	}
	if err := novels.Create(ctx, ashes); err != nil {
		return err
	}

	chapters := []*entity.Episode{
		{NovelID: ashes.ID, Title: "第一章 灰烬中的钥匙", Content: "守门人在废墟里醒来……", ReleaseDate: time.Now().Add(-48 * time.Hour)},
		{NovelID: ashes.ID, Title: "第二章 无名旅人", Content: "旅人带来了王城的消息……", ReleaseDate: time.Now().Add(-24 * time.Hour)},
		{NovelID: ashes.ID, Title: "第三章 封印之门", Content: "门后传来低语……", IsLocked: true, Price: 120, ReleaseDate: time.Now()},
	}
	for _, e := range chapters {
		if err := episodes.Create(ctx, e); err != nil {
			return err
		}
	}

	review := &entity.Review{NovelID: ashes.ID, UserID: mira.ID, Rating: 5, Comment: "世界观厚重，期待后续"}
	if err := reviews.Create(ctx, review); err != nil {
		return err
	}
	if err := novels.RecomputeRating(ctx, ashes.ID); err != nil {
		return err
	}

	top := &entity.Comment{EpisodeID: chapters[0].ID, UserID: mira.ID, Content: "开篇气氛拉满"}
	if err := comments.Create(ctx, top); err != nil {
		return err
	}
	reply := &entity.Comment{EpisodeID: chapters[0].ID, UserID: elias.ID, ParentID: &top.ID, Content: "谢谢支持，周更不断"}
	return comments.Create(ctx, reply)
}
