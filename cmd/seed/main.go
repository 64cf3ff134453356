package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/jewel-storefront/config"
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/db"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/internal/report"
	"github.com/ikkim/jewel-storefront/pkg/redis"
	"github.com/ikkim/jewel-storefront/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Imports accounts from an XLSX sheet into a session's users so they can
// sign in from that session.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [session_token]")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open session store:", err)
	}
	defer closeStore()

	// reuse a browser's session when a token is given, otherwise start one
	var sessionID, token string
	if len(os.Args) > 2 {
		claims, err := util.ValidateSessionToken(os.Args[2], cfg.Session.Secret)
		if err != nil {
			log.Fatal("Invalid session token:", err)
		}
		sessionID, token = claims.SessionID, os.Args[2]
	} else {
		sessionID = util.NewSessionID()
		token, err = util.GenerateSessionToken(sessionID, cfg.Session.Secret, cfg.Session.Expiry)
		if err != nil {
			log.Fatal("Failed to issue session token:", err)
		}
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	result, err := report.UsersFromWorkbook(f)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}
	for _, reason := range result.Skipped {
		fmt.Printf("Skipped %s\n", reason)
	}
	fmt.Printf("Total users to import: %d\n", len(result.Users))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(store)

	existing, err := userRepo.FindAll(ctx, sessionID)
	if err != nil {
		log.Fatal("Failed to read existing users:", err)
	}
	merged, added := mergeUsers(existing, result.Users)
	if err := userRepo.SaveAll(ctx, sessionID, merged); err != nil {
		log.Fatal("Failed to save users:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Users imported: %d (already present: %d)\n", added, len(result.Users)-added)
	fmt.Printf("Session token: %s\n", token)
}

// mergeUsers appends incoming accounts whose email is not taken yet
func mergeUsers(existing, incoming []model.User) ([]model.User, int) {
	taken := make(map[string]bool, len(existing))
	for _, u := range existing {
		taken[strings.ToLower(u.Email)] = true
	}

	merged := existing
	added := 0
	for _, u := range incoming {
		key := strings.ToLower(u.Email)
		if taken[key] {
			continue
		}
		taken[key] = true
		merged = append(merged, u)
		added++
	}
	return merged, added
}

func openStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Store.Driver {
	case "redis":
		client, err := redis.Shared(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedisStore(client), func() { redis.Close() }, nil
	case "postgres":
		if err := db.Initialize(&cfg.Database); err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv.NewGormStore(db.GetDB()), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("seeding needs a persistent STORE_DRIVER (redis or postgres), got %q", cfg.Store.Driver)
	}
}
