// Command token prints a signed bearer token for local testing and service
// accounts. It signs with JWT_SECRET from the environment or .env.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"timeclock/internal/domain/auth"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/logging"
)

func main() {
	role := flag.String("role", auth.RoleEmployee, "role to grant (employee or admin)")
	employeeID := flag.String("employee", "", "employee id the token acts for")
	userID := flag.String("user", "", "user id, defaults to the employee id")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logging.Setup(os.Stderr, "", cfg.SlogLevel()))

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}
	if _, ok := auth.RolePermissions[*role]; !ok {
		slog.Error("unknown role", "role", *role)
		os.Exit(2)
	}
	if *userID == "" {
		*userID = *employeeID
	}
	if *userID == "" {
		slog.Error("one of -user or -employee is required")
		os.Exit(2)
	}

	token, err := auth.GenerateToken(cfg.JWTSecret, auth.Identity{UserID: *userID, EmployeeID: *employeeID, Role: *role}, *ttl)
	if err != nil {
		slog.Error("sign token", "err", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
