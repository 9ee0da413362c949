package main

import (
	"context"
	"errors"
	"log"

	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/modules/auth"
	"servicehub/internal/repository"

	"gorm.io/gorm"
)

type listingSeed struct {
	name, category, description string
}

var defaultListings = []listingSeed{
	// Home Services
	{"Plumbing", "home", "Professional plumbing services for homes and offices"},
	{"Electrical Work", "home", "Licensed electrical installation and repair services"},
	{"Home Cleaning", "home", "Professional house cleaning and maintenance"},
	{"Painting", "home", "Interior and exterior painting services"},
	{"Carpentry", "home", "Custom furniture and woodwork services"},
	{"Landscaping", "home", "Garden design and maintenance services"},
	{"Moving Services", "home", "Professional moving and relocation services"},

	// Personal Services
	{"Beauty Services", "personal", "Hair, makeup, and beauty treatments"},
	{"Fitness Training", "personal", "Personal fitness and training sessions"},
	{"Massage Therapy", "personal", "Therapeutic and relaxation massage"},
	{"Pet Care", "personal", "Pet grooming, walking, and sitting services"},
	{"Tutoring", "personal", "Academic tutoring and educational support"},

	// Event Services
	{"Photography", "events", "Professional photography for events and portraits"},
	{"Event Planning", "events", "Complete event planning and coordination"},
	{"Catering", "events", "Food and beverage services for events"},

	// Business Services
	{"Web Development", "business", "Website design and development services"},
	{"Graphic Design", "business", "Logo, branding, and graphic design"},
	{"Accounting", "business", "Bookkeeping and financial services"},
	{"Legal Consulting", "business", "Legal advice and consultation"},
	{"IT Support", "business", "Computer and IT technical support"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	if database.IsPostgres(cfg.DatabaseURL) {
		err = database.MigrateUp(cfg.DatabaseURL)
	} else {
		err = repository.AutoMigrate(db)
	}
	if err != nil {
		log.Fatal("migrate failed:", err)
	}

	if err := seed(context.Background(), db, cfg); err != nil {
		log.Fatal("seed failed:", err)
	}
	log.Println("Seeding completed")
}

// seed is idempotent: existing rows are left untouched.
func seed(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	users := repository.NewUserRepository(db)
	listings := repository.NewListingRepository(db)

	exists, err := users.ExistsByEmail(ctx, cfg.SeedAdminEmail)
	if err != nil {
		return err
	}
	if !exists {
		hash, err := auth.NewHasher(cfg.BcryptCost).Hash(cfg.SeedAdminPassword)
		if err != nil {
			return err
		}
		admin := &domain.User{
			Email:        cfg.SeedAdminEmail,
			PasswordHash: hash,
			FullName:     "System Administrator",
			Role:         domain.RoleAdmin,
			Status:       domain.AccountActive,
		}
		if err := users.Create(ctx, admin); err != nil {
			return err
		}
		log.Printf("Admin created: %s", cfg.SeedAdminEmail)
	}

	created := 0
	for _, s := range defaultListings {
		_, err := listings.GetByName(ctx, s.name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		l := &domain.Listing{Name: s.name, Category: s.category, Description: s.description, IsActive: true}
		if err := listings.Create(ctx, l); err != nil {
			return err
		}
		created++
	}
	log.Printf("Services created: %d", created)
	return nil
}
