package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/amirasaad/subtracker/infra/initializer"
	"github.com/amirasaad/subtracker/pkg/app"
	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/service/auth"
	"github.com/google/uuid"
)

const usage = "Commands: send-reminders, stats <user_id>, token <user_id> [email]"

func main() {
	argsLen := len(os.Args)
	if argsLen < 2 {
		fmt.Println("Usage: cli <command> [arguments]")
		fmt.Println(usage)
		return
	}
	cmd := os.Args[1]
	cfg, err := config.Load(config.GetEnv("ENV_FILE", ".env"))
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	ctx := context.Background()

	switch cmd {
	case "send-reminders":
		a, err := newApp(cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		report, err := a.ReminderService.DispatchDue(ctx, time.Now())
		if err != nil {
			fmt.Println("Error dispatching reminders:", err)
			os.Exit(1)
		}
		fmt.Printf("Checked %d reminders: %d delivered, %d failed\n", report.Checked, report.Delivered, report.Failed)
	case "stats":
		if argsLen < 3 {
			fmt.Println("Usage: stats <user_id>")
			return
		}
		userID, err := uuid.Parse(os.Args[2])
		if err != nil {
			fmt.Println("Invalid user id:", err)
			os.Exit(1)
		}
		a, err := newApp(cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		stats, err := a.DashboardService.Stats(ctx, userID)
		if err != nil {
			fmt.Println("Error fetching stats:", err)
			os.Exit(1)
		}
		fmt.Printf("Subscriptions: %d\nMonthly: %s\nYearly: %s\nSavings: %s\n",
			stats.TotalSubscriptions, stats.MonthlyCost, stats.YearlyCost, stats.PotentialSavings)
	case "token":
		if argsLen < 3 {
			fmt.Println("Usage: token <user_id> [email]")
			return
		}
		if cfg.Auth.Jwt == nil || cfg.Auth.Jwt.Secret == "" {
			fmt.Println("AUTH_JWT_SECRET is not set")
			os.Exit(1)
		}
		identity := dto.Identity{UserID: os.Args[2]}
		if argsLen > 3 {
			identity.Email = os.Args[3]
		}
		token, err := auth.NewJWTStrategy(cfg.Auth.Jwt, slog.Default()).GenerateToken(identity)
		if err != nil {
			fmt.Println("Error generating token:", err)
			os.Exit(1)
		}
		fmt.Println(token)
	default:
		fmt.Println("Unknown command:", cmd)
		fmt.Println(usage)
	}
}

func newApp(cfg *config.App) (*app.App, error) {
	deps, err := initializer.InitializeCore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return app.New(deps, cfg), nil
}
