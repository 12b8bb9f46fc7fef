package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/config"
	"github.com/playgrid/playgrid-api/internal/domain/court"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/domain/product"
	"github.com/playgrid/playgrid-api/internal/domain/user"
	"github.com/playgrid/playgrid-api/internal/pkg/database"
	"github.com/playgrid/playgrid-api/internal/pkg/password"
)

// Seeds a development database with a demo owner, a customer, one
// published facility, two courts and rental inventory.
func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx := context.Background()
	now := time.Now()

	userRepo := user.NewRepository(db)
	facilityRepo := facility.NewRepository(db)
	courtRepo := court.NewRepository(db)
	productRepo := product.NewRepository(db)

	ownerHash, err := password.Hash("owner_password")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	customerHash, err := password.Hash("customer_password")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	owner := &user.User{
		ID:           uuid.New(),
		Email:        "owner@playgrid.dev",
		PasswordHash: ownerHash,
		Role:         user.RoleOwner,
		FullName:     "Demo Owner",
		Phone:        sql.NullString{String: "+37120000001", Valid: true},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, owner); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed owner")
	}

	customer := &user.User{
		ID:           uuid.New(),
		Email:        "customer@playgrid.dev",
		PasswordHash: customerHash,
		Role:         user.RoleCustomer,
		FullName:     "Demo Customer",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(ctx, customer); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed customer")
	}

	f := &facility.Facility{
		ID:          uuid.New(),
		OwnerID:     owner.ID,
		Name:        "Riverside Sports Club",
		Description: sql.NullString{String: "Indoor and outdoor courts by the river.", Valid: true},
		City:        "Riga",
		Address:     "Krasta iela 52",
		Amenities:   pq.StringArray{"parking", "showers", "cafe"},
		Phone:       sql.NullString{String: "+37167000000", Valid: true},
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := facilityRepo.Create(ctx, f); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed facility")
	}

	courts := []*court.Court{
		{
			ID:           uuid.New(),
			FacilityID:   f.ID,
			Name:         "Center Court",
			Sport:        court.SportTennis,
			Surface:      sql.NullString{String: "clay", Valid: true},
			Indoor:       false,
			PricePerHour: 2500,
			OpenHour:     8,
			CloseHour:    22,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New(),
			FacilityID:   f.ID,
			Name:         "Padel 1",
			Sport:        court.SportPadel,
			Indoor:       true,
			PricePerHour: 3200,
			OpenHour:     7,
			CloseHour:    23,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, c := range courts {
		if err := courtRepo.Create(ctx, c); err != nil {
			log.Fatal().Err(err).Str("court", c.Name).Msg("Failed to seed court")
		}
	}

	products := []*product.Product{
		{
			ID:           uuid.New(),
			FacilityID:   f.ID,
			Name:         "Tennis racket",
			Category:     sql.NullString{String: "rackets", Valid: true},
			PricePerUnit: 500,
			RentalUnit:   product.UnitHour,
			StockTotal:   10,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New(),
			FacilityID:   f.ID,
			Name:         "Ball machine",
			Category:     sql.NullString{String: "machines", Valid: true},
			PricePerUnit: 1500,
			RentalUnit:   product.UnitHour,
			StockTotal:   2,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, p := range products {
		if err := productRepo.Create(ctx, p); err != nil {
			log.Fatal().Err(err).Str("product", p.Name).Msg("Failed to seed product")
		}
	}

	log.Info().
		Str("owner", owner.Email).
		Str("customer", customer.Email).
		Str("facility", f.Name).
		Msg("Seed data created")
}
