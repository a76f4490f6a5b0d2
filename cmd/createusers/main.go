package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/services"
	"github.com/JeffersonNayron/Turma-B/store"
	"github.com/JeffersonNayron/Turma-B/utils"
)

var CLI struct {
	DB    string `help:"SQLite database path." env:"DB_PATH" default:"attendance.db"`
	Debug bool   `help:"Log SQL statements."`

	Add  AddCmd  `cmd:"" help:"Create one account."`
	Seed SeedCmd `cmd:"" help:"Create the admin and team accounts."`
	List ListCmd `cmd:"" help:"List accounts."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("createusers"),
		kong.Description("Manage login accounts of the attendance service"),
		kong.UsageOnError(),
	)

	db, err := config.OpenDB(CLI.DB, CLI.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	users := store.NewUserStore(db)
	// The CLI never opens sessions, so the session side stays in memory.
	key, err := utils.NewSigningKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	auth := services.NewAuthService(users, services.NewMemorySessionStore(), utils.NewTokenManager(key), time.Hour)

	err = kctx.Run(&Context{
		Ctx:   context.Background(),
		Users: users,
		Auth:  auth,
		Out:   os.Stdout,
	})
	kctx.FatalIfErrorf(err)
}
