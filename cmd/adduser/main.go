// Command adduser creates a user and profile row, for seeding an
// installation before anyone can sign in.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ojt-tracker/internal/config"
	"ojt-tracker/internal/model"
	"ojt-tracker/internal/service"
)

func main() {
	configFile := flag.String("config", "", "config file path")
	email := flag.String("email", "", "user email (required)")
	password := flag.String("password", "", "initial password (required)")
	fullName := flag.String("name", "", "full name")
	program := flag.String("program", "", "program/course name")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: adduser -email ... -password ... [-name ...] [-program ...]")
		os.Exit(2)
	}

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, "db connect failed:", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Profile{}, &model.DailyLog{}, &model.WeeklyJournal{}); err != nil {
		fmt.Fprintln(os.Stderr, "migrate failed:", err)
		os.Exit(1)
	}

	u, err := service.NewAuthService(db).Register(context.Background(), *email, *password, *fullName, *program)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create user failed:", err)
		os.Exit(1)
	}
	fmt.Printf("created user %d (%s)\n", u.ID, u.Email)
}
