// Command cleanup removes the duplicate rows that historical double-writes
// left behind: repeated challenge/wisdom names and repeated schedule days.
// The serving paths repair opportunistically on read; this command sweeps
// everything at once and is intended for an external cron job.
//
// With -user it repairs a single user, otherwise every user with data.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/postgres"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
	"github.com/mindflowhq/mindflow-backend/internal/adapter/schedrow"
	"github.com/mindflowhq/mindflow-backend/internal/app"
	"github.com/mindflowhq/mindflow-backend/internal/config"
	"github.com/mindflowhq/mindflow-backend/internal/repository/challenge"
	"github.com/mindflowhq/mindflow-backend/internal/repository/schedule"
	"github.com/mindflowhq/mindflow-backend/internal/repository/settings"
	"github.com/mindflowhq/mindflow-backend/internal/repository/wisdom"
	"github.com/mindflowhq/mindflow-backend/internal/service/catalog"
	"github.com/mindflowhq/mindflow-backend/internal/service/planner"
)

func main() {
	userFlag := flag.String("user", "", "repair a single user (UUID); all users when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	primaryPool, err := postgres.NewPool(ctx, cfg.PrimaryDB)
	if err != nil {
		logger.Error("connect primary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer primaryPool.Close()

	secondaryPool, err := postgres.NewPool(ctx, cfg.SecondaryDB)
	if err != nil {
		logger.Error("connect secondary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer secondaryPool.Close()

	primary := postgres.NewStore("primary", primaryPool, postgres.PrimaryTables(), logger)
	secondary := postgres.NewStore("secondary", secondaryPool, postgres.SecondaryTables(), logger)
	db := replica.New(primary, secondary, logger,
		replica.WithSecondaryTransform("schedules", schedrow.SecondaryTransform))

	catalogSvc := catalog.NewService(logger, challenge.New(db), wisdom.New(db))
	plannerSvc := planner.NewService(logger, schedule.New(db), settings.New(db))

	var users []uuid.UUID
	if *userFlag != "" {
		id, err := uuid.Parse(*userFlag)
		if err != nil {
			logger.Error("invalid -user flag", slog.String("error", err.Error()))
			os.Exit(1)
		}
		users = []uuid.UUID{id}
	} else {
		users, err = collectUsers(ctx, db)
		if err != nil {
			logger.Error("collect users", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var challenges, wisdomRows, schedules int
	for _, userID := range users {
		result, err := catalogSvc.RepairDuplicates(ctx, userID)
		if err != nil {
			logger.Error("catalog repair failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		challenges += result.Challenges
		wisdomRows += result.Wisdom

		n, err := plannerSvc.RepairDuplicates(ctx, userID)
		if err != nil {
			logger.Error("schedule repair failed",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		schedules += n
	}

	logger.Info("cleanup completed",
		slog.Int("users", len(users)),
		slog.Int("challenges_removed", challenges),
		slog.Int("wisdom_removed", wisdomRows),
		slog.Int("schedules_removed", schedules),
	)
}

// collectUsers gathers every user ID that owns rows in a user-scoped table.
func collectUsers(ctx context.Context, db *replica.Client) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})

	for _, table := range []string{"challenges", "wisdom_library", "schedules", "daily_logs"} {
		rows, err := db.Select(ctx, table, nil)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if id := row.UUID("user_id"); id != uuid.Nil {
				seen[id] = struct{}{}
			}
		}
	}

	users := make([]uuid.UUID, 0, len(seen))
	for id := range seen {
		users = append(users, id)
	}
	return users, nil
}
