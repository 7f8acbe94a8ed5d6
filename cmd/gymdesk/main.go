// gymdesk is a terminal companion to the admin dashboard: it resumes the
// session behind GYMDESK_TOKEN (or signs in with the credentials from the
// environment) and prints a snapshot or exports the finance report.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SamHez/bodymax-gym/internal/api"
	"github.com/SamHez/bodymax-gym/internal/app"
	"github.com/SamHez/bodymax-gym/internal/config"
	"github.com/SamHez/bodymax-gym/internal/domain"
	"github.com/SamHez/bodymax-gym/internal/export"
	"github.com/SamHez/bodymax-gym/internal/session"
	"github.com/SamHez/bodymax-gym/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	sessions := &session.Manager{Logger: logger}
	client := api.New(cfg.APIBaseURL, sessions)
	sessions.API = client

	controller := &app.Controller{
		API:        client,
		Session:    sessions,
		Members:    &store.Members{API: client, Logger: logger},
		Attendance: &store.Attendance{API: client, Logger: logger},
		Finance:    &store.Finance{API: client, Logger: logger, PollInterval: cfg.PollInterval},
		Expenses:   &store.Expenses{API: client, Logger: logger},
		Logger:     logger,
	}
	defer controller.Close()

	ctx := context.Background()
	user := controller.Start(ctx, os.Getenv("GYMDESK_TOKEN"))
	if user == nil {
		email := os.Getenv("GYMDESK_EMAIL")
		password := os.Getenv("GYMDESK_PASSWORD")
		if email == "" || password == "" {
			logger.Error("GYMDESK_TOKEN or GYMDESK_EMAIL and GYMDESK_PASSWORD are required")
			os.Exit(1)
		}
		user, err = sessions.SignIn(ctx, email, password)
		if err != nil {
			logger.Error("sign-in failed", "err", err)
			os.Exit(1)
		}
	}

	cmd := "dashboard"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "dashboard":
		runDashboard(ctx, controller, user)
	case "export":
		out := "finance.xlsx"
		if len(os.Args) > 2 {
			out = os.Args[2]
		}
		if err := runExport(ctx, controller, out); err != nil {
			logger.Error("export failed", "err", err)
			os.Exit(1)
		}
		logger.Info("finance report written", "file", out)
	default:
		fmt.Fprintf(os.Stderr, "usage: gymdesk [dashboard|export [file]]\n")
		os.Exit(2)
	}
}

func runDashboard(ctx context.Context, c *app.Controller, user *domain.User) {
	c.Members.Load(ctx)
	c.Attendance.Load(ctx)
	c.Finance.Refresh(ctx)

	stats := c.Finance.Stats()
	fmt.Printf("BodyMax Gym: signed in as %s (%s)\n\n", user.Email, user.Role)
	fmt.Printf("Members:        %d\n", len(c.Members.Members()))
	fmt.Printf("Checked in:     %d\n", c.Attendance.TodayCount())
	if c.CanAccess(user.Role, app.RouteFinance) {
		fmt.Printf("Revenue:        %d RWF\n", stats.Revenue)
		fmt.Printf("Expenses:       %d RWF\n", stats.Expenses)
		fmt.Printf("Net profit:     %d RWF\n", stats.NetProfit)
		fmt.Printf("Mobile/Cash:    %.0f%% / %.0f%%\n", stats.MobileSharePercent(), stats.CashSharePercent())
	}
}

func runExport(ctx context.Context, c *app.Controller, out string) error {
	c.Finance.Refresh(ctx)
	stats := c.Finance.Stats()

	var data []byte
	var err error
	if strings.HasSuffix(out, ".csv") {
		data, err = export.FinanceCSV(stats)
	} else {
		data, err = export.FinanceXLSX(stats)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
