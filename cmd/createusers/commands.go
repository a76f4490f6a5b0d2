package main

import (
	"context"
	"fmt"
	"io"

	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/services"
	"github.com/JeffersonNayron/Turma-B/store"
)

// Context is bound into every command's Run method.
type Context struct {
	Ctx   context.Context
	Users *store.UserStore
	Auth  *services.AuthService
	Out   io.Writer
}

type AddCmd struct {
	Role     string `short:"r" help:"Account role (adm|equipe)." enum:"adm,equipe" required:""`
	Password string `short:"p" help:"Account password." required:""`
}

func (c *AddCmd) Run(ctx *Context) error {
	user, err := ctx.Auth.CreateUser(ctx.Ctx, models.Role(c.Role), c.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Created %s account #%d\n", user.Role, user.ID)
	return nil
}

type SeedCmd struct {
	AdminPassword string `help:"Password for the admin account." env:"ADMIN_PASSWORD" required:""`
	TeamPassword  string `help:"Password for the team account." env:"TEAM_PASSWORD" required:""`
}

func (c *SeedCmd) Validate() error {
	if c.AdminPassword == c.TeamPassword {
		return fmt.Errorf("admin and team passwords must differ")
	}
	return nil
}

func (c *SeedCmd) Run(ctx *Context) error {
	accounts := []struct {
		role     models.Role
		password string
	}{
		{models.RoleAdmin, c.AdminPassword},
		{models.RoleTeam, c.TeamPassword},
	}

	for _, account := range accounts {
		user, err := ctx.Auth.CreateUser(ctx.Ctx, account.role, account.password)
		if err != nil {
			return fmt.Errorf("create %s account: %w", account.role, err)
		}
		fmt.Fprintf(ctx.Out, "Created %s account #%d\n", user.Role, user.ID)
	}
	fmt.Fprintln(ctx.Out, "Users created successfully.")
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *Context) error {
	users, err := ctx.Users.List(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(ctx.Out, "No accounts.")
		return nil
	}
	for _, user := range users {
		fmt.Fprintf(ctx.Out, "#%d\t%s\t%s\n", user.ID, user.Role, user.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
