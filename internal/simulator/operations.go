package simulator

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"proposal-desk/internal/common/errors"
	"proposal-desk/internal/models"
)

// State is a copy of the simulated collections.
type State struct {
	Users     []models.User
	Proposals []models.Proposal
	Templates []models.Template
}

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

// Register fails with CONFLICT when the email is taken. The new user becomes the current user.
func (b *Backend) Register(req models.RegisterRequest) (models.AuthResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Email == req.Email {
			return models.AuthResponse{}, errors.NewConflictError("Email already registered")
		}
	}

	user := models.User{
		ID:    newID("user_"),
		Name:  req.Name,
		Email: req.Email,
		Plan:  models.PlanFree,
	}
	b.users = append(b.users, user)
	b.setCurrent(user)

	token, err := b.tokens.issue(user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{User: user, Token: token}, nil
}

// Login fails with UNAUTHORIZED when no user has the email. The password is not checked.
func (b *Backend) Login(req models.LoginRequest) (models.AuthResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Email == req.Email {
			b.setCurrent(u)
			token, err := b.tokens.issue(u)
			if err != nil {
				return models.AuthResponse{}, err
			}
			return models.AuthResponse{User: u, Token: token}, nil
		}
	}
	return models.AuthResponse{}, errors.NewUnauthorizedError("Invalid email or password")
}

// ListProposals returns the stored proposals whose id carries the proposal prefix.
func (b *Backend) ListProposals() []models.Proposal {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Proposal, 0, len(b.proposals))
	for _, p := range b.proposals {
		if strings.HasPrefix(p.ID, models.IDPrefixProposal) {
			out = append(out, p)
		}
	}
	return out
}

func (b *Backend) GetProposal(id string) (models.Proposal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.proposals {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Proposal{}, errors.NewNotFoundError("Proposal not found")
}

// CreateProposal stores the client and section fields of data under a new id and timestamp.
// Status defaults to draft.
func (b *Backend) CreateProposal(data models.Proposal) models.Proposal {
	status := data.Status
	if status == "" {
		status = models.StatusDraft
	}
	p := models.Proposal{
		ID:            newID(models.IDPrefixProposal),
		ClientName:    data.ClientName,
		ClientCompany: data.ClientCompany,
		ProjectTitle:  data.ProjectTitle,
		Status:        status,
		CreatedAt:     b.now().UTC().Format(time.RFC3339Nano),
	}.WithSections(data.Sections())

	b.mu.Lock()
	b.proposals = append(b.proposals, p)
	b.mu.Unlock()
	return p
}

func (b *Backend) ListTemplates() []models.Template {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Template, len(b.templates))
	copy(out, b.templates)
	return out
}

func (b *Backend) CreateTemplate(req models.TemplateCreate) models.Template {
	t := models.Template{
		ID:        newID(models.IDPrefixTemplate),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: b.now().UTC().Format(time.RFC3339Nano),
	}

	b.mu.Lock()
	b.templates = append(b.templates, t)
	b.mu.Unlock()
	return t
}

// UpdateProfile renames the current user and returns a copy. NOT_FOUND when nobody is signed in.
func (b *Backend) UpdateProfile(name string) (models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return models.User{}, errors.NewNotFoundError("User not found")
	}
	b.current.Name = name
	for i := range b.users {
		if b.users[i].ID == b.current.ID {
			b.users[i].Name = name
		}
	}
	return *b.current, nil
}

// UpdateProfileFor renames the user with userID and returns a copy. NOT_FOUND when no such user exists.
func (b *Backend) UpdateProfileFor(userID, name string) (models.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.users {
		if b.users[i].ID != userID {
			continue
		}
		b.users[i].Name = name
		if b.current != nil && b.current.ID == userID {
			b.current.Name = name
		}
		return b.users[i], nil
	}
	return models.User{}, errors.NewNotFoundError("User not found")
}

// CurrentUser returns the user of the active simulated session.
func (b *Backend) CurrentUser() (models.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return models.User{}, false
	}
	return *b.current, true
}

// Seed replaces the collections. The current user is reset.
func (b *Backend) Seed(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users = append([]models.User(nil), s.Users...)
	b.proposals = append([]models.Proposal(nil), s.Proposals...)
	b.templates = append([]models.Template(nil), s.Templates...)
	b.current = nil
}

// Snapshot copies the collections.
func (b *Backend) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		Users:     append([]models.User(nil), b.users...),
		Proposals: append([]models.Proposal(nil), b.proposals...),
		Templates: append([]models.Template(nil), b.templates...),
	}
}

// setCurrent must be called with mu held.
func (b *Backend) setCurrent(u models.User) {
	cur := u
	b.current = &cur
}
