package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"musicmentor/internal/config"
	"musicmentor/internal/db"
	"musicmentor/internal/model"
	"musicmentor/internal/repository"
)

// Seeds a local database with a few instructors and classes for development.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Class{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	classRepo := repository.NewClassRepository(gormDB)
	ctx := context.Background()

	users := []model.User{
		{Name: "Ada Keys", Email: "ada@musicmentor.dev", Role: model.RoleAdmin},
		{Name: "Miles Reed", Email: "miles@musicmentor.dev", Role: model.RoleInstructor},
		{Name: "Nina Chord", Email: "nina@musicmentor.dev", Role: model.RoleInstructor},
		{Name: "Sam Lee", Email: "sam@musicmentor.dev", Role: model.RoleStudent},
	}
	seededUsers := 0
	for i := range users {
		if _, err := userRepo.FindByEmail(ctx, users[i].Email); err == nil {
			continue
		}
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			log.Printf("Skipping user %s: %v", users[i].Email, err)
			continue
		}
		seededUsers++
	}
	log.Printf("Seeded %d users", seededUsers)

	classes := []model.Class{
		{
			Title:           "Jazz Trumpet Fundamentals",
			InstructorName:  "Miles Reed",
			InstructorEmail: "miles@musicmentor.dev",
			Price:           decimal.NewFromInt(45),
			AvailableSeats:  12,
			EnrolledStudent: 8,
			Status:          model.ClassStatusApproved,
		},
		{
			Title:           "Improvisation Workshop",
			InstructorName:  "Miles Reed",
			InstructorEmail: "miles@musicmentor.dev",
			Price:           decimal.NewFromInt(60),
			AvailableSeats:  6,
			EnrolledStudent: 14,
			Status:          model.ClassStatusApproved,
		},
		{
			Title:           "Piano for Beginners",
			InstructorName:  "Nina Chord",
			InstructorEmail: "nina@musicmentor.dev",
			Price:           decimal.NewFromInt(30),
			AvailableSeats:  20,
			EnrolledStudent: 5,
			Status:          model.ClassStatusPending,
		},
	}
	seededClasses := 0
	for i := range classes {
		if err := classRepo.Create(ctx, &classes[i]); err != nil {
			log.Printf("Skipping class %q: %v", classes[i].Title, err)
			continue
		}
		seededClasses++
	}
	log.Printf("Seeded %d classes", seededClasses)

	log.Println("Seed completed")
}
