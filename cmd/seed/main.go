package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"wishlist/internal/config"
	"wishlist/internal/db"
	"wishlist/internal/model"
	"wishlist/internal/repository"
)

// seedUser is one demo account with its wishlist.
type seedUser struct {
	userName string
	password string
	items    []model.Item
}

var fixtures = []seedUser{
	{
		userName: "alice",
		password: "password1",
		items: []model.Item{
			{Name: "Mechanical keyboard", Description: "Tenkeyless, brown switches", Link: "https://example.com/keyboard"},
			{Name: "Hiking boots", Description: "Waterproof, size 39"},
		},
	},
	{
		userName: "bob",
		password: "password2",
		items: []model.Item{
			{Name: "Espresso grinder", Link: "https://example.com/grinder"},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	created, skipped := 0, 0
	for _, f := range fixtures {
		if existing, err := userRepo.FindByUserName(ctx, f.userName); err == nil && existing != nil {
			log.Printf("User %q already exists, skipping", f.userName)
			skipped++
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(f.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %q: %v", f.userName, err)
		}
		user := &model.User{UserName: f.userName, PasswordHash: string(hashed)}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", f.userName, err)
		}

		for i := range f.items {
			item := f.items[i]
			item.UserID = user.ID
			if err := itemRepo.Create(ctx, &item); err != nil {
				log.Fatalf("Failed to create item %q for %q: %v", item.Name, f.userName, err)
			}
		}
		created++
		log.Printf("Seeded user %q with %d items", f.userName, len(f.items))
	}

	log.Printf("Seed complete: %d users created, %d skipped", created, skipped)
}
