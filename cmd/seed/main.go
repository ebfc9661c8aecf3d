// Command seed loads the photo sharing dataset into the configured store.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"photoshare/internal/auth"
	"photoshare/internal/bootstrap"
	"photoshare/internal/config"
	"photoshare/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	shouldClean := flag.Bool("clean", true, "Clear every collection before seeding")
	numFake := flag.Int("fake", 0, "Number of generated users to add after the fixtures")
	photosPerUser := flag.Int("photos", 2, "Photos per generated user")
	commentsPerPhoto := flag.Int("comments", 3, "Comments per generated photo")
	fakeSeed := flag.Int64("seed", 0, "Random seed for generated data (0 picks one)")
	flag.Parse()

	_ = godotenv.Load()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: fixtures + %d generated users, clean=%v\n", *numFake, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		log.Fatalf("Failed to build password hasher: %v", err)
	}

	if *shouldClean {
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	res, err := seed.LoadFixtures(ctx, store, hasher)
	if err != nil {
		log.Fatalf("❌ Fixture seeding failed: %v", err)
	}
	log.Printf("Loaded fixtures: %d users, %d photos, %d comments", res.Users, res.Photos, res.Comments)

	if *numFake > 0 {
		fake, err := seed.Fake(ctx, store, hasher, "password123", seed.Options{
			NumUsers:         *numFake,
			PhotosPerUser:    *photosPerUser,
			CommentsPerPhoto: *commentsPerPhoto,
			Seed:             *fakeSeed,
		})
		if err != nil {
			log.Fatalf("❌ Generated seeding failed: %v", err)
		}
		log.Printf("Generated: %d users, %d photos, %d comments", fake.Users, fake.Photos, fake.Comments)
		log.Println("📧 All generated users have the password: password123")
	}

	log.Println("✨ All done! Fixture users log in with the password: weak")
}
