package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
	"github.com/soloadmin/admin-api/internal/platform/logger"
	"github.com/soloadmin/admin-api/internal/redact"
	"github.com/soloadmin/admin-api/internal/service/auth"
	"github.com/soloadmin/admin-api/internal/store"
)

// TokenIssuer issues and revokes the bearer tokens of administrators.
// *auth.TokenService implements it.
type TokenIssuer interface {
	Issue(ctx context.Context, adminID uuid.UUID) (string, *domain.AccessToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
}

// Service implements the administrator account operations.
type Service struct {
	admins   store.AdminStore
	tokens   TokenIssuer
	blobs    store.BlobStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService creates the account service from its collaborators.
func NewService(
	admins store.AdminStore,
	tokens TokenIssuer,
	blobs store.BlobStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		admins:   admins,
		tokens:   tokens,
		blobs:    blobs,
		hasher:   hasher,
		verifier: verifier,
		validate: newValidator(),
		logger:   log.With("component", "account_service"),
	}
}

func (s *Service) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Register creates the administrator account and issues its first token.
// It returns ErrAdminExists when an administrator is already registered and
// *domain.ValidationErrors when the input is rejected.
func (s *Service) Register(
	ctx context.Context,
	in RegisterInput,
	photo *domain.Upload,
) (*domain.Administrator, string, error) {
	log := s.log(ctx)

	count, err := s.admins.Count(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to count administrators: %w", err)
	}
	if count > 0 {
		log.Debug("registration refused: administrator already exists")
		return nil, "", ErrAdminExists
	}

	verrs, err := s.validateRegister(ctx, in, photo)
	if err != nil {
		return nil, "", err
	}
	if err := verrs.OrNil(); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	photoKey, err := s.storePhoto(ctx, photo)
	if err != nil {
		return nil, "", err
	}

	admin, err := domain.NewAdministrator(
		in.LastName, in.FirstName, in.Email, in.Phone, domain.Sex(in.Sex), hash, photoKey,
	)
	if err != nil {
		s.discardPhoto(ctx, photoKey)
		return nil, "", fmt.Errorf("failed to build administrator: %w", err)
	}

	if err := s.admins.Create(ctx, admin); err != nil {
		s.discardPhoto(ctx, photoKey)
		switch {
		case errors.Is(err, store.ErrAdminExists):
			log.Info("registration lost race against concurrent registration")
			return nil, "", ErrAdminExists
		case errors.Is(err, store.ErrEmailExists):
			verrs := domain.NewValidationErrors()
			verrs.Add("email", msgEmailTaken)
			return nil, "", verrs
		}
		return nil, "", fmt.Errorf("failed to create administrator: %w", err)
	}

	token, _, err := s.tokens.Issue(ctx, admin.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("administrator registered", "admin_id", admin.ID)
	return admin, token, nil
}

// Login checks the credentials and issues a new token. Earlier tokens stay valid.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (*domain.Administrator, string, error) {
	log := s.log(ctx)

	verrs, err := s.validateLogin(ctx, in)
	if err != nil {
		return nil, "", err
	}
	if err := verrs.OrNil(); err != nil {
		return nil, "", err
	}

	admin, err := s.admins.GetByEmail(ctx, in.Email)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login failed: unknown email")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load administrator: %w", err)
	}

	if err := s.verifier.Compare(admin.HashedPassword, in.Password); err != nil {
		log.Debug("login failed: password mismatch", "admin_id", admin.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(ctx, admin.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("administrator logged in", "admin_id", admin.ID)
	return admin, token, nil
}

// FetchSelf returns the administrator identified by id.
func (s *Service) FetchSelf(ctx context.Context, id uuid.UUID) (*domain.Administrator, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load administrator: %w", err)
	}
	return admin, nil
}

// UpdateSelf applies the submitted fields and optional new photo to the
// administrator identified by id. Nothing changes when validation fails, and
// a request without fields or photo returns the record without writing it.
func (s *Service) UpdateSelf(
	ctx context.Context,
	id uuid.UUID,
	in UpdateInput,
	photo *domain.Upload,
) (*domain.Administrator, error) {
	log := s.log(ctx)

	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load administrator: %w", err)
	}

	verrs, err := s.validateUpdate(ctx, id, in, photo)
	if err != nil {
		return nil, err
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}
	if in.Empty() && photo == nil {
		log.Debug("update carried no changes", "admin_id", admin.ID)
		return admin, nil
	}

	var newHash string
	if in.Password != nil && *in.Password != "" {
		if newHash, err = s.hasher.Hash(*in.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	var newPhoto *string
	if photo != nil {
		if admin.HasPhoto() {
			if err := s.blobs.Delete(ctx, *admin.Photo); err != nil {
				return nil, fmt.Errorf("failed to delete previous photo: %w", err)
			}
		}
		if newPhoto, err = s.storePhoto(ctx, photo); err != nil {
			return nil, err
		}
		admin.Photo = newPhoto
	}

	applyString(&admin.LastName, in.LastName)
	applyString(&admin.FirstName, in.FirstName)
	applyString(&admin.Email, in.Email)
	applyString(&admin.Phone, in.Phone)
	if in.Sex != nil {
		admin.Sex = domain.Sex(*in.Sex)
	}
	if newHash != "" {
		admin.HashedPassword = newHash
	}

	if err := s.admins.Update(ctx, admin); err != nil {
		s.discardPhoto(ctx, newPhoto)
		if errors.Is(err, store.ErrEmailExists) {
			verrs := domain.NewValidationErrors()
			verrs.Add("email", msgEmailTaken)
			return nil, verrs
		}
		return nil, fmt.Errorf("failed to update administrator: %w", err)
	}

	log.Info("administrator updated", "admin_id", admin.ID)
	return admin, nil
}

// Logout revokes the token used for the current request only.
func (s *Service) Logout(ctx context.Context, tokenID uuid.UUID) error {
	if err := s.tokens.Revoke(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	s.log(ctx).Info("administrator logged out", "token_id", tokenID)
	return nil
}

// DeleteSelf removes the administrator's photo and record together with every
// token issued to it. A later registration is allowed again.
func (s *Service) DeleteSelf(ctx context.Context, id uuid.UUID) error {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load administrator: %w", err)
	}

	if admin.HasPhoto() {
		if err := s.blobs.Delete(ctx, *admin.Photo); err != nil {
			return fmt.Errorf("failed to delete photo: %w", err)
		}
	}

	if err := s.admins.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete administrator: %w", err)
	}

	s.log(ctx).Info("administrator deleted", "admin_id", id)
	return nil
}

func (s *Service) storePhoto(ctx context.Context, photo *domain.Upload) (*string, error) {
	if photo == nil {
		return nil, nil
	}
	key := photo.PhotoKey()
	if err := s.blobs.Put(ctx, key, photo.Data, photo.ContentType()); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}
	return &key, nil
}

// discardPhoto removes a blob written earlier in a request that then failed.
func (s *Service) discardPhoto(ctx context.Context, key *string) {
	if key == nil {
		return
	}
	if err := s.blobs.Delete(ctx, *key); err != nil {
		s.log(ctx).Warn("failed to remove orphaned photo",
			"key", *key,
			"error", redact.Error(err))
	}
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
