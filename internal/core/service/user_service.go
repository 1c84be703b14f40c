package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hirepath/jobportal-api/internal/core/domain"
	"github.com/hirepath/jobportal-api/internal/core/ports"
)

const defaultActivityLimit = 20

// ProfileCache abstracts the read-through cache for sanitized user
// projections (Redis). Get returns (nil, nil) on a miss. Cache failures are
// tolerated: the service logs and falls through to the repository.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Set(ctx context.Context, userID string, user *domain.User) error
	Invalidate(ctx context.Context, userID string) error
}

// UserService implements registration, login, and profile self-service.
type UserService struct {
	repo     ports.UserRepository
	events   ports.EventRepository
	uploader ports.AssetUploader
	tokens   ports.TokenIssuer
	cache    ProfileCache
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewUserService wires the account subsystem. cache and activity may be nil
// in tests; every other collaborator is required.
func NewUserService(
	repo ports.UserRepository,
	events ports.EventRepository,
	uploader ports.AssetUploader,
	tokens ports.TokenIssuer,
	cache ProfileCache,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		events:   events,
		uploader: uploader,
		tokens:   tokens,
		cache:    cache,
		activity: activity,
		log:      log,
	}
}

// Register creates a new account. Uniqueness checks run strictly before the
// photo upload so a conflicting request never leaves an orphaned object in
// storage; the insert happens only after both upload and hash succeed, so an
// upload failure never leaves a partial user record.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Fullname == "" || in.Email == "" || in.PhoneNumber == "" || in.Password == "" ||
		in.Role == "" || in.PAN == "" || in.Aadhaar == "" {
		return nil, domain.ErrMissingFields
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if in.Image == nil || len(in.Image.Data) == 0 {
		return nil, domain.ErrImageRequired
	}

	// Sequential check-then-act lookups, short-circuiting on the first
	// collision. Not race-free on their own; the repository's unique
	// indexes are the backstop.
	if err := s.checkAvailable(ctx, s.repo.FindByEmail, in.Email, domain.ErrEmailTaken); err != nil {
		return nil, err
	}
	if err := s.checkAvailable(ctx, s.repo.FindByAadhaar, in.Aadhaar, domain.ErrAadhaarTaken); err != nil {
		return nil, err
	}
	if err := s.checkAvailable(ctx, s.repo.FindByPAN, in.PAN, domain.ErrPANTaken); err != nil {
		return nil, err
	}

	photoURL, err := s.uploader.UploadImage(ctx, in.Image.Data, in.Image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Fullname:     in.Fullname,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Aadhaar:      in.Aadhaar,
		PAN:          in.PAN,
		PasswordHash: string(hash),
		Role:         in.Role,
		Profile:      domain.Profile{ProfilePhoto: photoURL},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(created.ID, domain.ActionRegistered, "account created")
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return created.Sanitized(), nil
}

// Login verifies credentials and mints a 24-hour session token. Unknown
// email and wrong password produce the same error.
func (s *UserService) Login(ctx context.Context, email, password, role string) (string, *domain.User, error) {
	if email == "" || password == "" || role == "" {
		return "", nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !strings.EqualFold(user.Role, role) {
		return "", nil, domain.ErrRoleMismatch
	}

	token, err := s.tokens.Mint(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("mint token: %w", err)
	}

	s.record(user.ID, domain.ActionLoggedIn, "")

	return token, user.Sanitized(), nil
}

// UpdateProfile applies a partial mutation: only non-empty fields overwrite
// stored values, and skills replace the prior list wholesale. A resume
// upload failure aborts the whole update.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Fullname != "" {
		user.Fullname = in.Fullname
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.PhoneNumber != "" {
		user.PhoneNumber = in.PhoneNumber
	}
	if in.Bio != "" {
		user.Profile.Bio = in.Bio
	}
	if in.Skills != "" {
		user.Profile.Skills = splitSkills(in.Skills)
	}

	if in.Resume != nil {
		url, err := s.uploader.UploadRaw(ctx, in.Resume.Reader, in.Resume.Size, in.Resume.Filename)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		user.Profile.Resume = url
		user.Profile.ResumeOriginalName = in.Resume.Filename
	}

	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache invalidation failed")
		}
	}

	s.record(userID, domain.ActionProfileUpdated, "")

	return user.Sanitized(), nil
}

// Profile returns the sanitized user for the given identity, reading through
// the cache when one is configured.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sanitized := user.Sanitized()
	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, sanitized); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("profile cache write failed")
		}
	}
	return sanitized, nil
}

// Activity lists the most recent account events for the given identity.
func (s *UserService) Activity(ctx context.Context, userID string, limit int) ([]domain.AccountEvent, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.events.ListByUser(ctx, userID, limit)
}

type lookupFn func(ctx context.Context, value string) (*domain.User, error)

// checkAvailable fails with taken when a user already holds the value, and
// propagates any lookup error other than "not found".
func (s *UserService) checkAvailable(ctx context.Context, find lookupFn, value string, taken error) error {
	_, err := find(ctx, value)
	if err == nil {
		return taken
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	return err
}

func (s *UserService) record(userID, action, detail string) {
	if s.activity == nil {
		return
	}
	s.activity.Enqueue(ports.AccountEventInput{
		UserID: userID,
		Action: action,
		Detail: detail,
		At:     time.Now().UTC(),
	})
}

// splitSkills converts a comma-separated string into a trimmed, ordered
// list, dropping empty entries.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
