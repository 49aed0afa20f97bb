package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/meetly/sync-client/internal/client/assistant"
	"github.com/meetly/sync-client/internal/client/core"
	"github.com/meetly/sync-client/internal/client/rest"
	"github.com/meetly/sync-client/internal/repository"
	"github.com/meetly/sync-client/internal/service"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("init logger:", err)
	}
	defer logger.Sync()

	apiURL := envOr("MEETLY_API_URL", "http://localhost:8000/api/v1")
	assistantURL := envOr("MEETLY_ASSISTANT_URL", "http://localhost:8002")
	dbPath := envOr("MEETLY_SESSION_DB", "./session.db")

	db, err := repository.InitDB(dbPath)
	if err != nil {
		logger.Fatal("init session db", zap.Error(err))
	}
	defer db.Close()

	sessions := repository.NewSessionRepository(db)
	api := core.NewClient(rest.New(apiURL, true, sessions), sessions)
	sync := service.NewSyncService(api, sessions, logger)

	ctx := context.Background()

	resumed, err := sync.Resume(ctx)
	if err != nil {
		logger.Fatal("resume session", zap.Error(err))
	}
	if !resumed {
		username := os.Getenv("MEETLY_USERNAME")
		password := os.Getenv("MEETLY_PASSWORD")
		if username == "" || password == "" {
			logger.Fatal("no stored session and MEETLY_USERNAME/MEETLY_PASSWORD not set")
		}
		user, err := sync.Login(ctx, username, password)
		if err != nil {
			logger.Fatal("login", zap.Error(err))
		}
		logger.Info("logged in", zap.String("user", user.Username))
	}

	snapshot := sync.Snapshot()
	logger.Info("workspace loaded",
		zap.Int("projects", len(snapshot.Projects)),
		zap.Int("users", len(snapshot.Users)),
		zap.Int("tasks", len(snapshot.Tasks)),
		zap.Int("meetings", len(snapshot.Meetings)),
	)

	if prompt := os.Getenv("MEETLY_ASSISTANT_PROMPT"); prompt != "" {
		agent := assistant.NewClient(rest.New(assistantURL, false, nil), sessions)
		projectID := ""
		if len(snapshot.Projects) > 0 {
			projectID = snapshot.Projects[0].ID
		}
		user, _ := sync.CurrentUser()
		answer, err := agent.Chat(ctx, prompt, projectID, user.ID)
		if err != nil {
			logger.Error("assistant chat", zap.Error(err))
		} else {
			logger.Info("assistant reply", zap.String("answer", answer))
		}
	}

	sync.Flush()
}
