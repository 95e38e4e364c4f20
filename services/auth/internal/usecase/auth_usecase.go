package usecase

import (
	"errors"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"fitsocial/pkg/apperror"
	"fitsocial/pkg/jwt"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/s3"
	"fitsocial/services/auth/internal/entity"
	"fitsocial/services/auth/internal/repo/persistent"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength    = 6
	maxDisplayNameLength = 50
	maxBioLength         = 500
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	ErrAccountDeactivated = fmt.Errorf("%w: account is deactivated", apperror.ErrForbidden)

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)
	avatarTypes     = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true}
)

type AuthUseCase interface {
	Register(email, username, password string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetMe(userID string) (*entity.User, error)
	GetProfile(userID string) (*entity.Profile, error)
	UpdateProfile(userID string, displayName, bio *string) (*entity.User, error)
	UploadAvatar(userID string, file *multipart.FileHeader) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	storage    s3.Storage
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storage s3.Storage,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		storage:    storage,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(email, username, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if !usernamePattern.MatchString(username) {
		return nil, "", fmt.Errorf("%w: username must be 3-30 letters, digits, '_' or '.'", apperror.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", apperror.ErrInvalidInput, minPasswordLength)
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", fmt.Errorf("%w: user with this email already exists", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to look up email: %w", err)
	}

	if _, err := uc.userRepo.GetByUsername(username); err == nil {
		return nil, "", fmt.Errorf("%w: username already taken", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to look up username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:       email,
		Username:    username,
		Password:    string(hashedPassword),
		DisplayName: username,
		Role:        entity.RoleMember,
		IsActive:    true,
	}

	if err := uc.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	uc.logger.Info("Registered user %s (%s)", user.ID, user.Username)

	return uc.issue(user)
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountDeactivated
	}

	return uc.issue(user)
}

func (uc *authUseCase) issue(user *entity.User) (*entity.User, string, error) {
	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetMe(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, apperror.NotFoundOr(err))
	}
	user.Password = ""
	return user, nil
}

func (uc *authUseCase) GetProfile(userID string) (*entity.Profile, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, apperror.NotFoundOr(err))
	}

	profile := user.Profile()

	stats, err := uc.userRepo.GetStats(userID)
	if err != nil {
		uc.logger.Warn("Failed to load stats for user %s: %v", userID, err)
		return profile, nil
	}
	profile.FollowersCount = stats.FollowersCount
	profile.FollowingCount = stats.FollowingCount
	profile.PostsCount = stats.PostsCount

	return profile, nil
}

func (uc *authUseCase) UpdateProfile(userID string, displayName, bio *string) (*entity.User, error) {
	user, err := uc.GetMe(userID)
	if err != nil {
		return nil, err
	}

	if displayName != nil {
		name := strings.TrimSpace(*displayName)
		if len([]rune(name)) > maxDisplayNameLength {
			return nil, fmt.Errorf("%w: display name exceeds %d characters", apperror.ErrInvalidInput, maxDisplayNameLength)
		}
		user.DisplayName = name
	}
	if bio != nil {
		b := strings.TrimSpace(*bio)
		if len([]rune(b)) > maxBioLength {
			return nil, fmt.Errorf("%w: bio exceeds %d characters", apperror.ErrInvalidInput, maxBioLength)
		}
		user.Bio = b
	}

	if err := uc.userRepo.UpdateProfile(userID, user.DisplayName, user.Bio); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", apperror.NotFoundOr(err))
	}
	return user, nil
}

func (uc *authUseCase) UploadAvatar(userID string, file *multipart.FileHeader) (*entity.User, error) {
	contentType := file.Header.Get("Content-Type")
	if !avatarTypes[contentType] {
		return nil, fmt.Errorf("%w: avatar must be a jpeg, png, gif or webp image", apperror.ErrInvalidInput)
	}

	user, err := uc.GetMe(userID)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open avatar: %w", err)
	}
	defer src.Close()

	avatarURL, err := uc.storage.UploadFile(s3.AvatarKey(userID, file.Filename), src, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := uc.userRepo.UpdateAvatar(userID, avatarURL); err != nil {
		uc.deleteObject(avatarURL)
		return nil, fmt.Errorf("failed to update avatar: %w", apperror.NotFoundOr(err))
	}

	uc.deleteObject(user.AvatarURL)
	user.AvatarURL = avatarURL
	return user, nil
}

// deleteObject removes a previously uploaded object; URLs outside our bucket are ignored.
func (uc *authUseCase) deleteObject(url string) {
	key, ok := uc.storage.KeyFromURL(url)
	if !ok {
		return
	}
	if err := uc.storage.DeleteFile(key); err != nil {
		uc.logger.Warn("Failed to delete avatar object %s: %v", key, err)
	}
}
