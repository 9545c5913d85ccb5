package services

import (
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/models"
)

const (
	demoEmail      = "demo@todo.com"
	demoPassword   = "demo123"
	demoInviteCode = "DEMO123"
)

// SeedDemo creates the demo account, a handful of sample tasks and a demo
// organization when they are not present yet. Safe to run on every boot.
func SeedDemo(store *database.Store, log zerolog.Logger) error {
	users, err := store.Users()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == demoEmail {
			return nil
		}
	}

	hash, err := argon2id.CreateHash(demoPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	demo := models.User{
		ID:        "demo-user-001",
		Name:      "Demo User",
		Email:     demoEmail,
		Password:  hash,
		Phone:     "13800138000",
		Address:   "Chaoyang District, Beijing",
		Position:  "Product Manager",
		Bio:       "Loves planning and time management",
		CreatedAt: time.Now(),
	}

	if _, err := store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		return append(users, demo), nil
	}); err != nil {
		return err
	}

	today := time.Now().Format(DateLayout)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(DateLayout)
	dayAfter := time.Now().AddDate(0, 0, 2).Format(DateLayout)

	demoTasks := []models.Task{
		{
			ID:          uuid.New().String(),
			Title:       "Complete project proposal",
			Description: "Finish the Q1 project proposal",
			Category:    models.CategoryWork,
			Priority:    models.PriorityHigh,
			Date:        today,
			OwnerEmail:  demoEmail,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Coffee with Sarah",
			Description: "Meet Sarah at the cafe",
			Category:    models.CategorySocial,
			Priority:    models.PriorityMedium,
			Date:        tomorrow,
			OwnerEmail:  demoEmail,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Buy groceries",
			Description: "Milk, eggs, bread, vegetables",
			Category:    models.CategoryFamily,
			Priority:    models.PriorityMedium,
			Date:        today,
			Completed:   true,
			OwnerEmail:  demoEmail,
		},
		{
			ID:          uuid.New().String(),
			Title:       "Learn TypeScript generics",
			Description: "Watch the tutorial and complete exercises",
			Category:    models.CategoryLearning,
			Priority:    models.PriorityLow,
			Date:        dayAfter,
			OwnerEmail:  demoEmail,
		},
	}

	if _, err := store.UpdateTodos(func(todos []models.Task) ([]models.Task, error) {
		return append(todos, demoTasks...), nil
	}); err != nil {
		return err
	}

	// A demo organization so the schedule-sharing view has something to show.
	if _, err := store.UpdateOrganizations(func(orgs []models.Organization) ([]models.Organization, error) {
		if len(orgs) > 0 {
			return orgs, nil
		}
		return append(orgs, models.Organization{
			ID:         "demo-org-1",
			Name:       "Demo Organization",
			InviteCode: demoInviteCode,
			CreatedBy:  demoEmail,
			CreatedAt:  time.Now(),
			Members:    []string{demoEmail},
		}), nil
	}); err != nil {
		return err
	}

	log.Info().Str("email", demoEmail).Msg("demo account seeded")
	return nil
}
