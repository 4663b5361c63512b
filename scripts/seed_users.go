package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/khoahotran/namelookup/adapters/persistence"
	"github.com/khoahotran/namelookup/internal/config"
	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "seed_users",
		Usage: "add users into the configured record store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "JSON array of {id, displayName, email}"},
			&cli.IntFlag{Name: "fake", Usage: "number of generated users"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "seed for generated users"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	var users []*user.User
	switch {
	case c.String("file") != "":
		users, err = readUsers(c.String("file"))
		if err != nil {
			return err
		}
	case c.Int("fake") > 0:
		users = fakeUsers(c.Int("fake"), c.Uint64("seed"))
	default:
		return cli.Exit("one of --file or --fake is required", 2)
	}

	ctx := context.Background()
	store, closeStore, err := persistence.OpenUserStore(ctx, cfg, logger.NewNop())
	if err != nil {
		return fmt.Errorf("cannot open store: %w", err)
	}
	defer closeStore()

	added := 0
	for _, u := range users {
		created, err := store.Save(ctx, u)
		if err != nil {
			return fmt.Errorf("cannot add user %s: %w", u.ID, err)
		}
		if created {
			added++
		}
	}

	fmt.Printf("added %d of %d users into %s store\n", added, len(users), cfg.Store.Driver)
	return nil
}

func readUsers(path string) ([]*user.User, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var users []*user.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	now := time.Now().UTC()
	for i, u := range users {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		u.DisplayName = user.NormalizeDisplayName(u.DisplayName)
		u.Email = user.NormalizeEmail(u.Email)
		if u.CreatedAt.IsZero() {
			// keep file order as store order
			u.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		}
	}
	return users, nil
}

func fakeUsers(n int, seed uint64) []*user.User {
	faker := gofakeit.New(seed)
	now := time.Now().UTC()
	users := make([]*user.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &user.User{
			ID:          faker.UUID(),
			DisplayName: faker.Name(),
			Email:       user.NormalizeEmail(faker.Email()),
			CreatedAt:   now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	return users
}
