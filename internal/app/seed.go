// File: internal/app/seed.go
package app

import (
	"context"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"dreamhome_backend/internal/category"
	"dreamhome_backend/internal/common"
	"dreamhome_backend/internal/config"
	"dreamhome_backend/internal/location"
	"dreamhome_backend/internal/user"
)

// Seed inserts the bootstrap data a fresh database needs to be usable:
// the first admin account plus a starter set of categories and
// locations. Each step is guarded by a row count, so rerunning against
// a populated database changes nothing.
func (s *Server) Seed(ctx context.Context) error {
	return seedDatabase(ctx, s.db, s.cfg, s.logger)
}

func seedDatabase(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("seed")
	if err := seedAdminUser(ctx, db, cfg, log); err != nil {
		return err
	}
	if err := seedCategories(ctx, db, log); err != nil {
		return err
	}
	return seedLocations(ctx, db, log)
}

// seedAdminUser creates the first admin account. Self-registration only
// hands out the USER and AGENT roles and role changes require an
// existing admin, so without this step no admin could ever exist.
func seedAdminUser(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&user.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := common.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	admin := user.User{
		Email:        cfg.SeedAdminEmail,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "System",
		Role:         common.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.Info("Admin account seeded", zap.String("email", admin.Email))
	return nil
}

func seedCategories(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&category.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name        string
		description string
	}{
		{"Apartment", "Flats and apartments"},
		{"House", "Detached houses and villas"},
		{"Plot", "Building and recreational plots"},
		{"Commercial space", "Retail and service premises"},
		{"Office", "Office spaces"},
	}

	categories := make([]category.Category, 0, len(seed))
	for _, c := range seed {
		description := c.description
		categories = append(categories, category.Category{
			Name:        c.name,
			Slug:        slug.Make(c.name),
			Description: &description,
		})
	}
	if err := db.WithContext(ctx).Create(&categories).Error; err != nil {
		return err
	}
	log.Info("Categories seeded", zap.Int("count", len(categories)))
	return nil
}

func seedLocations(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&location.Location{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		city     string
		district string
		image    string
	}{
		{"Warszawa", "Mokotów", "https://images.unsplash.com/photo-1519197924294-4ba991a11128?w=800"},
		{"Kraków", "Stare Miasto", "https://images.unsplash.com/photo-1636903364559-0dfc358abd94?w=800"},
		{"Gdańsk", "Wrzeszcz", "https://images.unsplash.com/photo-1683137805526-7ebe6f361286?w=800"},
		{"Wrocław", "Krzyki", ""},
		{"Poznań", "Jeżyce", ""},
		{"Gdynia", "Śródmieście", "https://images.unsplash.com/photo-1640727272714-58e6fce66278?w=800"},
		{"Sopot", "Dolny Sopot", ""},
		{"Łódź", "Śródmieście", "https://images.unsplash.com/photo-1652345254712-8988e67e0330?w=800"},
		{"Katowice", "Centrum", ""},
		{"Szczecin", "Niebuszewo", ""},
	}

	locations := make([]location.Location, 0, len(seed))
	for _, l := range seed {
		loc := location.Location{
			City:     location.NormalizeCity(l.city),
			District: l.district,
		}
		if l.image != "" {
			image := l.image
			loc.ImageURL = &image
		}
		locations = append(locations, loc)
	}
	if err := db.WithContext(ctx).Create(&locations).Error; err != nil {
		return err
	}
	log.Info("Locations seeded", zap.Int("count", len(locations)))
	return nil
}
