package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cat-health-api/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not distinguish the two.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	repo       Repository
	issuer     auth.TokenIssuer
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository, issuer auth.TokenIssuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and returns it with a freshly issued token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return User{}, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return User{}, "", err
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, "", err
	}

	token, err := s.issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and returns the user with a new token.
// Unknown email and wrong password yield the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
