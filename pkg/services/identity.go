package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/models"
)

// IdentityService registers users, validates credentials and tracks the
// current session as a single stored record. Passwords are stored as
// argon2id hashes; the register/login success and failure contract is the
// same as a plain comparison would give.
type IdentityService struct {
	store *database.Store
	log   zerolog.Logger
}

func NewIdentityService(store *database.Store, log zerolog.Logger) *IdentityService {
	return &IdentityService{store: store, log: log.With().Str("service", "identity").Logger()}
}

// Register creates a new user and sets it as the current session.
func (s *IdentityService) Register(req models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErr("email", "a valid email is required")
	}
	if req.Password != req.ConfirmPassword {
		return nil, validationErr("password", "passwords do not match")
	}
	if len(req.Password) < 6 {
		return nil, validationErr("password", "password must be at least 6 characters")
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now(),
	}

	_, err = s.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.SetCurrentUser(user); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}

	s.log.Info().Str("email", email).Msg("user registered")
	return &user, nil
}

// Login validates credentials and sets the current session.
func (s *IdentityService) Login(email, password string) (*models.User, error) {
	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].Email != email {
			continue
		}
		match, err := argon2id.ComparePasswordAndHash(password, users[i].Password)
		if err != nil || !match {
			return nil, ErrInvalidCredentials
		}
		if err := s.store.SetCurrentUser(users[i]); err != nil {
			return nil, fmt.Errorf("set session: %w", err)
		}
		s.log.Info().Str("email", email).Msg("user logged in")
		return &users[i], nil
	}

	return nil, ErrInvalidCredentials
}

// Logout clears the session record unconditionally. Idempotent.
func (s *IdentityService) Logout() error {
	return s.store.ClearCurrentUser()
}

// CurrentUser reads the session record; nil means logged out.
func (s *IdentityService) CurrentUser() (*models.User, error) {
	return s.store.CurrentUser()
}

// UserByEmail looks a user up by its unique email.
func (s *IdentityService) UserByEmail(email string) (*models.User, error) {
	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// UpdateProfile applies a partial patch to the user's profile fields. Empty
// fields in the patch are left unchanged.
func (s *IdentityService) UpdateProfile(email string, patch models.UpdateProfileRequest) (*models.User, error) {
	var updated models.User

	_, err := s.store.UpdateUsers(func(users []models.User) ([]models.User, error) {
		for i := range users {
			if users[i].Email != email {
				continue
			}
			if strings.TrimSpace(patch.Name) != "" {
				users[i].Name = strings.TrimSpace(patch.Name)
			}
			if patch.Phone != "" {
				users[i].Phone = patch.Phone
			}
			if patch.Address != "" {
				users[i].Address = patch.Address
			}
			if patch.Position != "" {
				users[i].Position = patch.Position
			}
			if patch.Bio != "" {
				users[i].Bio = patch.Bio
			}
			users[i].UpdatedAt = time.Now()
			updated = users[i]
			return users, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	// Keep the session record in sync when the current user edits itself.
	if cur, err := s.store.CurrentUser(); err == nil && cur != nil && cur.Email == email {
		_ = s.store.SetCurrentUser(updated)
	}

	return &updated, nil
}
