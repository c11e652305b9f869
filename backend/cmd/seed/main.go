package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/internal/store"
	"socialgraph/backend/pkg/config"
	"socialgraph/backend/pkg/logger"
)

// Seeds the configured Neo4j database with a small demo population so the
// graph view has something to show on a fresh install.
func main() {
	wipe := flag.Bool("wipe", false, "Delete all existing users before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting database seeding...")

	driver, err := neo4j.NewDriverWithContext(
		cfg.Neo4jURI,
		neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""),
	)
	if err != nil {
		log.Fatal("Failed to create Neo4j driver", zap.Error(err))
	}
	ctx := context.Background()
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Failed to verify Neo4j connectivity", zap.Error(err))
	}

	log.Info("Creating constraints...")
	if err := createConstraints(ctx, driver); err != nil {
		log.Warn("Failed to create some constraints (may already exist)", zap.Error(err))
	}

	if *wipe {
		log.Info("Wiping existing users...")
		if err := wipeUsers(ctx, driver); err != nil {
			log.Fatal("Failed to wipe users", zap.Error(err))
		}
	}

	svc := social.NewUserService(store.NewNeo4jStore(driver), nil)

	seeds := []struct {
		username string
		age      int
		hobbies  []string
	}{
		{"Alice", 30, []string{"chess", "hiking"}},
		{"Bob", 28, []string{"chess", "ski"}},
		{"Cara", 35, []string{"ski", "painting"}},
		{"Dan", 41, []string{"hiking"}},
	}

	ids := make(map[string]string, len(seeds))
	for _, s := range seeds {
		u, err := svc.CreateUser(ctx, s.username, s.age, s.hobbies)
		if err != nil {
			log.Fatal("Failed to create user", zap.String("username", s.username), zap.Error(err))
		}
		ids[s.username] = u.ID
		log.Info("Created user", zap.String("username", s.username), zap.String("id", u.ID))
	}

	links := [][2]string{
		{"Alice", "Bob"},
		{"Bob", "Cara"},
		{"Alice", "Dan"},
	}
	for _, l := range links {
		if _, err := svc.LinkFriend(ctx, ids[l[0]], ids[l[1]]); err != nil {
			log.Fatal("Failed to link users", zap.String("user", l[0]), zap.String("friend", l[1]), zap.Error(err))
		}
		log.Info("Linked users", zap.String("user", l[0]), zap.String("friend", l[1]))
	}

	log.Info("Seeding complete", zap.Int("users", len(seeds)), zap.Int("links", len(links)))
}

func createConstraints(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx,
		"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE", nil)
	return err
}

func wipeUsers(ctx context.Context, driver neo4j.DriverWithContext) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.Run(ctx, "MATCH (u:User) DETACH DELETE u", nil)
	return err
}
