package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	"golang.org/x/crypto/bcrypt"
)

// Profile is the credential record without its password hash.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
	Gender  string `json:"gender,omitempty"`
}

func profileOf(u entity.User) *Profile {
	return &Profile{Name: u.Name, Email: u.Email, Address: u.Address, Gender: u.Gender}
}

type AccountService interface {
	SignUp(ctx context.Context, in entity.SignUpInput) (*Profile, error)
	LogIn(ctx context.Context, email, password string) (*Profile, error)
	Settings(ctx context.Context) (*entity.Settings, error)
	UpdateSettings(ctx context.Context, settings entity.Settings) (*entity.Settings, error)
}

type accountService struct {
	cols       *state.Collections
	log        logger.Logger
	bcryptCost int
}

func NewAccountService(cols *state.Collections, log logger.Logger, bcryptCost int) AccountService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &accountService{cols: cols, log: log, bcryptCost: bcryptCost}
}

// SignUp replaces the single stored credential record.
func (s *accountService) SignUp(ctx context.Context, in entity.SignUpInput) (*Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        entity.NormalizeEmail(in.Email),
		PasswordHash: string(hash),
		Address:      strings.TrimSpace(in.Address),
		Gender:       strings.TrimSpace(in.Gender),
		CreatedAt:    s.cols.Store().Now(),
	}
	if err := s.cols.User.Save(ctx, user); err != nil {
		s.log.Errorf("Error saving user record: %v", err)
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	_, err = s.cols.Settings.Update(ctx, func(st *entity.Settings) error {
		if st.Name == "" {
			st.Name = user.Name
		}
		return nil
	})
	if err != nil {
		s.log.Warnf("Could not initialise settings after sign-up: %v", err)
	}

	s.log.Infof("User %s signed up", user.Email)
	return profileOf(user), nil
}

func (s *accountService) LogIn(ctx context.Context, email, password string) (*Profile, error) {
	user, err := s.cols.User.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve user: %w", err)
	}
	if user.IsZero() {
		return nil, ErrNoUser
	}
	if user.Email != entity.NormalizeEmail(email) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("could not verify password: %w", err)
	}
	s.log.Infof("User %s logged in", user.Email)
	return profileOf(user), nil
}

func (s *accountService) Settings(ctx context.Context) (*entity.Settings, error) {
	st, err := s.cols.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve settings: %w", err)
	}
	return &st, nil
}

func (s *accountService) UpdateSettings(ctx context.Context, settings entity.Settings) (*entity.Settings, error) {
	settings.Name = strings.TrimSpace(settings.Name)
	settings.Username = strings.TrimSpace(settings.Username)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := s.cols.Settings.Save(ctx, settings); err != nil {
		s.log.Errorf("Error saving settings: %v", err)
		return nil, fmt.Errorf("could not save settings: %w", err)
	}
	s.log.Info("Profile updated")
	return &settings, nil
}
