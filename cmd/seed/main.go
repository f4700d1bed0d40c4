package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"learnnote/internal/config"
	"learnnote/internal/domain"
	"learnnote/internal/httputil"
	"learnnote/internal/repository/postgres"
	"learnnote/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Seeds a demo account with a small folder/topic/resource tree. Intended for
// local development; re-running it is safe since duplicates are skipped.
func main() {
	fresh := flag.Bool("fresh", false, "Drop all tables before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.Environment == "prod" && *fresh {
		log.Fatalf("🚫 BLOCKED: Cannot run --fresh in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx := context.Background()

	if *fresh {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Logger: logger}
	userRepo := postgres.NewUserRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	topicRepo := postgres.NewTopicRepository(repoConfig)
	resourceRepo := postgres.NewResourceRepository(repoConfig)

	userService := service.NewUserService(userRepo, logger)
	folderService := service.NewFolderService(folderRepo, logger)
	topicService := service.NewTopicService(topicRepo, resourceRepo, folderRepo, logger)
	resourceService := service.NewResourceService(resourceRepo, topicRepo, logger)

	log.Println("🌱 Seeding demo data...")

	user, err := userService.Create(ctx, &service.CreateUserRequest{
		Email:    "demo@learnnote.dev",
		Password: "demo-password",
		Name:     "Demo User",
	})
	if err != nil {
		if !errors.Is(err, domain.ErrConflict) {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		existing, err := userRepo.GetByEmail(ctx, "demo@learnnote.dev")
		if err != nil {
			log.Fatalf("Failed to load demo user: %v", err)
		}
		user = existing
	}

	folder, err := folderService.Create(ctx, user.ID, &service.FolderRequest{Title: str("Programming")})
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		log.Fatalf("Failed to create folder: %v", err)
	}
	if folder == nil {
		if folder, err = folderRepo.FindByTitle(ctx, user.ID, "Programming"); err != nil || folder == nil {
			log.Fatalf("Failed to load folder: %v", err)
		}
	}

	topic, err := topicService.Create(ctx, user.ID, &service.TopicRequest{
		Title:    str("Learning Go"),
		Parent:   id(folder.ID),
		Notebook: []byte(`{"ops":[{"insert":"Notes on Go\n"}]}`),
	})
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		log.Fatalf("Failed to create topic: %v", err)
	}
	if topic == nil {
		if topic, err = topicRepo.FindByTitle(ctx, user.ID, "Learning Go"); err != nil || topic == nil {
			log.Fatalf("Failed to load topic: %v", err)
		}
	}

	seedResources := []struct {
		title string
		uri   string
	}{
		{"A Tour of Go", "https://go.dev/tour/welcome/1"},
		{"Effective Go", "https://go.dev/doc/effective_go"},
		{"Go Concurrency Patterns", "https://www.youtube.com/watch?v=f6kdp27TYZs"},
	}
	for _, r := range seedResources {
		uri := r.uri
		_, err := resourceService.Create(ctx, user.ID, &service.ResourceRequest{
			Title:  str(r.title),
			Parent: id(topic.ID),
			URI:    &uri,
		})
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			log.Fatalf("Failed to create resource %q: %v", r.title, err)
		}
	}

	log.Println("✅ Seed complete")
	log.Println("   login: demo@learnnote.dev / demo-password")
}

// dropAllTables wipes the schema, including the migration bookkeeping table,
// so the next MigrateUp starts from scratch.
func dropAllTables(ctx context.Context, databaseURL string) error {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	_, err = pool.Exec(ctx, `
		DROP TABLE IF EXISTS resources, topics, folders, users, schema_migrations CASCADE
	`)
	return err
}

func str(s string) httputil.FlexString {
	return httputil.FlexString{Present: true, Valid: true, Value: s}
}

func id(n int64) httputil.FlexInt64 {
	return httputil.FlexInt64{Present: true, Valid: true, Value: n}
}
