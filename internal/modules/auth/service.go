package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"
)

// Service contains all business logic for authentication
type Service struct {
	users     UserRepository
	providers ProviderReader
	jwt       tokenIssuer
	hasher    *Hasher
	// compared against when the email is unknown so both failure paths
	// spend the same bcrypt time
	dummyHash string
}

func NewService(users UserRepository, providers ProviderReader, jwt tokenIssuer, hasher *Hasher) *Service {
	dummy, _ := hasher.Hash("servicehub-dummy-password")
	return &Service{
		users:     users,
		providers: providers,
		jwt:       jwt,
		hasher:    hasher,
		dummyHash: dummy,
	}
}

// RegisterCustomer creates a customer account and signs a session token for it.
func (s *Service) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) (*domain.User, string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	if err := validator.Check(req); err != nil {
		return nil, "", err
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         domain.RoleUser,
		Status:       domain.AccountActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.jwt.GenerateToken(jwt.Subject{
		UserID: user.ID,
		Kind:   string(domain.KindCustomer),
		Role:   string(user.Role),
		Email:  user.Email,
		Name:   user.FullName,
	})
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Login authenticates either kind of account. Every failure, including a
// suspended account, is reported as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if req.Kind == "" {
		req.Kind = domain.KindCustomer
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown account kind %q", domain.ErrValidation, req.Kind)
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var (
		sub    jwt.Subject
		hash   string
		active bool
	)
	switch req.Kind {
	case domain.KindProvider:
		p, err := s.providers.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if p != nil {
			hash = p.PasswordHash
			active = p.Status == domain.AccountActive
			sub = jwt.Subject{UserID: p.ID, Kind: string(domain.KindProvider), Role: string(domain.RoleProvider), Email: p.Email, Name: p.BusinessName}
		}
	default:
		u, err := s.users.GetByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if u != nil {
			hash = u.PasswordHash
			active = u.Status == domain.AccountActive
			sub = jwt.Subject{UserID: u.ID, Kind: string(domain.KindCustomer), Role: string(u.Role), Email: u.Email, Name: u.FullName}
		}
	}

	if hash == "" {
		s.hasher.Matches(s.dummyHash, req.Password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Matches(hash, req.Password) || !active {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(sub)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		AccountID: sub.UserID,
		Kind:      domain.PrincipalKind(sub.Kind),
		Role:      domain.UserRole(sub.Role),
		Email:     sub.Email,
		Name:      sub.Name,
	}, nil
}

// Me returns the account behind actor.
func (s *Service) Me(ctx context.Context, actor domain.Actor) (*Account, error) {
	switch actor.Kind {
	case domain.KindProvider:
		p, err := s.providers.GetByID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return &Account{Kind: actor.Kind, Provider: p}, nil
	case domain.KindCustomer:
		u, err := s.users.GetByID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return &Account{Kind: actor.Kind, User: u}, nil
	default:
		return nil, domain.ErrForbidden
	}
}
