package database

import (
	"sync"

	"team-planner-backend/pkg/models"
)

// Store is the typed facade over the record store. Every mutation is a
// whole-collection read-modify-write; a process-local mutex serializes those
// cycles because handlers run concurrently. Writers in other processes still
// race last-writer-wins, which the deployment model accepts.
type Store struct {
	mu      sync.Mutex
	records RecordStore
}

func NewStore(records RecordStore) *Store {
	return &Store{records: records}
}

// Records exposes the underlying record store (health checks, close).
func (s *Store) Records() RecordStore { return s.records }

func (s *Store) Close() error { return s.records.Close() }

// Users returns the full users collection.
func (s *Store) Users() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers()
}

// UpdateUsers runs fn over the current users collection and persists the
// result, all under the store lock.
func (s *Store) UpdateUsers(fn func([]models.User) ([]models.User, error)) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	users, err = fn(users)
	if err != nil {
		return nil, err
	}
	if err := s.records.ReplaceAll(CollectionUsers, users); err != nil {
		return nil, err
	}
	return users, nil
}

// Todos returns the full task collection (all owners).
func (s *Store) Todos() ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadTodos()
}

// UpdateTodos runs fn over the current task collection and persists the
// result, all under the store lock.
func (s *Store) UpdateTodos(fn func([]models.Task) ([]models.Task, error)) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.loadTodos()
	if err != nil {
		return nil, err
	}
	todos, err = fn(todos)
	if err != nil {
		return nil, err
	}
	if err := s.records.ReplaceAll(CollectionTodos, todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Organizations returns the full organizations collection.
func (s *Store) Organizations() ([]models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrganizations()
}

// UpdateOrganizations runs fn over the organizations collection and persists
// the result, all under the store lock.
func (s *Store) UpdateOrganizations(fn func([]models.Organization) ([]models.Organization, error)) ([]models.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orgs, err := s.loadOrganizations()
	if err != nil {
		return nil, err
	}
	orgs, err = fn(orgs)
	if err != nil {
		return nil, err
	}
	if err := s.records.ReplaceAll(CollectionOrganizations, orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// CurrentUser reads the session record. A nil user means logged out.
func (s *Store) CurrentUser() (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user models.User
	if err := s.records.GetAll(CollectionCurrentUser, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// SetCurrentUser stores u as the session record.
func (s *Store) SetCurrentUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.ReplaceAll(CollectionCurrentUser, u)
}

// ClearCurrentUser removes the session record. Idempotent.
func (s *Store) ClearCurrentUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Clear(CollectionCurrentUser)
}

func (s *Store) loadUsers() ([]models.User, error) {
	var users []models.User
	if err := s.records.GetAll(CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) loadTodos() ([]models.Task, error) {
	var todos []models.Task
	if err := s.records.GetAll(CollectionTodos, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *Store) loadOrganizations() ([]models.Organization, error) {
	var orgs []models.Organization
	if err := s.records.GetAll(CollectionOrganizations, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}
