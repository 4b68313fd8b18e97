package user

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrIDRequired          = errors.New("user: id is required")
	ErrEmailRequired       = errors.New("user: email is required")
	ErrPasswordHashMissing = errors.New("user: password hash is required")
	ErrNameRequired        = errors.New("user: name is required")
	ErrEmailAlreadyUsed    = errors.New("user: email already used")
	ErrInvalidRating       = errors.New("user: rating snapshot out of range")
	ErrNotFound            = errors.New("user: not found")
)

type ID string

// User is a student account. Every student may both rent and lend; the
// Rating/RatingCount pair is a derived snapshot of the reviews received as
// landlord, rebuilt in full by the rating recompute and never edited by hand.
type User struct {
	ID           ID
	Email        string
	Name         string
	University   string
	PasswordHash string
	Verified     bool
	Rating       float64
	RatingCount  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}

type CreateParams struct {
	ID           ID
	Email        string
	Name         string
	University   string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUser(params CreateParams) (*User, error) {
	id := strings.TrimSpace(string(params.ID))
	if id == "" {
		return nil, ErrIDRequired
	}
	email := normalizeEmail(params.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(params.PasswordHash) == "" {
		return nil, ErrPasswordHashMissing
	}
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &User{
		ID:           ID(id),
		Email:        email,
		Name:         name,
		University:   strings.TrimSpace(params.University),
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ApplyRating overwrites the landlord rating snapshot. Zero count forces a
// zero average; otherwise the average must sit inside the 1..5 scale.
func (u *User) ApplyRating(average float64, count int, now time.Time) error {
	if count < 0 {
		return ErrInvalidRating
	}
	if count == 0 && average != 0 {
		return ErrInvalidRating
	}
	if count > 0 && (average < 1 || average > 5) {
		return ErrInvalidRating
	}
	u.Rating = average
	u.RatingCount = count
	u.touch(now)
	return nil
}

// AverageRating rounds the snapshot to one decimal for display.
func (u *User) AverageRating() float64 {
	if u.RatingCount == 0 {
		return 0
	}
	return math.Round(u.Rating*10) / 10
}

func (u *User) MarkVerified(now time.Time) {
	u.Verified = true
	u.touch(now)
}

func (u *User) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	u.UpdatedAt = now.UTC()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
