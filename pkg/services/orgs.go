package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/models"
)

// OrgService is CRUD over invite-code-joined groups plus the derived member
// profile view.
type OrgService struct {
	store    *database.Store
	tasks    *TaskService
	presence PresenceProvider
	log      zerolog.Logger
}

func NewOrgService(store *database.Store, tasks *TaskService, presence PresenceProvider, log zerolog.Logger) *OrgService {
	return &OrgService{
		store:    store,
		tasks:    tasks,
		presence: presence,
		log:      log.With().Str("service", "orgs").Logger(),
	}
}

// Create stores a new organization with the creator as its only member.
// Invite codes are unique across organizations, so join never has to break a
// tie between groups sharing a code.
func (s *OrgService) Create(name, inviteCode, creatorEmail string) (*models.Organization, error) {
	name = strings.TrimSpace(name)
	inviteCode = strings.TrimSpace(inviteCode)

	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	if inviteCode == "" {
		return nil, validationErr("invite_code", "invite code is required")
	}

	org := models.Organization{
		ID:         uuid.New().String(),
		Name:       name,
		InviteCode: inviteCode,
		CreatedBy:  creatorEmail,
		CreatedAt:  time.Now(),
		Members:    []string{creatorEmail},
	}

	_, err := s.store.UpdateOrganizations(func(orgs []models.Organization) ([]models.Organization, error) {
		for _, o := range orgs {
			if o.InviteCode == inviteCode {
				return nil, ErrDuplicateInviteCode
			}
		}
		return append(orgs, org), nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("org", org.ID).Str("creator", creatorEmail).Msg("organization created")
	return &org, nil
}

// JoinByInviteCode adds email to the organization holding the code. Joining
// an organization the user is already in is a no-op, not an error.
func (s *OrgService) JoinByInviteCode(inviteCode, email string) (*models.Organization, error) {
	var joined models.Organization

	_, err := s.store.UpdateOrganizations(func(orgs []models.Organization) ([]models.Organization, error) {
		for i := range orgs {
			if orgs[i].InviteCode != inviteCode {
				continue
			}
			if !orgs[i].HasMember(email) {
				orgs[i].Members = append(orgs[i].Members, email)
			}
			joined = orgs[i]
			return orgs, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}

	return &joined, nil
}

// ListForUser returns every organization the email is a member of.
func (s *OrgService) ListForUser(email string) ([]models.Organization, error) {
	orgs, err := s.store.Organizations()
	if err != nil {
		return nil, err
	}

	var out []models.Organization
	for _, o := range orgs {
		if o.HasMember(email) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Get returns the organization with the given id.
func (s *OrgService) Get(id string) (*models.Organization, error) {
	orgs, err := s.store.Organizations()
	if err != nil {
		return nil, err
	}
	for i := range orgs {
		if orgs[i].ID == id {
			return &orgs[i], nil
		}
	}
	return nil, ErrNotFound
}

// MemberProfiles derives the member list view for an organization: display
// name from the email local part, the admin flag, the presence stub and the
// count of shareable tasks dated today. Admins sort first, then online
// members, then by name.
func (s *OrgService) MemberProfiles(org *models.Organization, now time.Time) ([]models.MemberProfile, error) {
	today := now.Format(DateLayout)

	profiles := make([]models.MemberProfile, 0, len(org.Members))
	for _, email := range org.Members {
		tasks, err := s.tasks.ListForDate(email, today)
		if err != nil {
			return nil, err
		}

		publicToday := 0
		for _, t := range tasks {
			if t.Category.Shareable() {
				publicToday++
			}
		}

		profiles = append(profiles, models.MemberProfile{
			ID:                email,
			Name:              localPart(email),
			Email:             email,
			IsAdmin:           email == org.CreatedBy,
			IsOnline:          s.presence.IsOnline(email),
			TodayPublicEvents: publicToday,
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].IsAdmin != profiles[j].IsAdmin {
			return profiles[i].IsAdmin
		}
		if profiles[i].IsOnline != profiles[j].IsOnline {
			return profiles[i].IsOnline
		}
		return profiles[i].Name < profiles[j].Name
	})

	return profiles, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
