package services

import (
	"context"
	"tehnika_server/database"
	"tehnika_server/lib"
	"tehnika_server/structs"
	"tehnika_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
)

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// Login verifies back-office credentials and returns the user on success.
// Any failure mode returns ErrInvalidCredentials so user existence never leaks.
func (as *AuthService) Login(ctx context.Context, loginRequest *structs.LoginRequest) (*tables.User, error) {
	startTime := time.Now()

	user, err := database.Query[tables.User](as.db).Where("email", loginRequest.Email).First(ctx)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
				gecho.Field("original_error", err),
			)
		}

		return nil, lib.ErrInvalidCredentials
	}

	// First() returns nil, nil for no results
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", loginRequest.Email))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := lib.VerifyPassword(loginRequest.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.ID),
		)
		return nil, lib.ErrInvalidCredentials
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", loginRequest.Email),
			gecho.Field("user_id", user.ID),
		)
		return nil, lib.ErrInvalidCredentials
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.ID), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

// GenerateAccessToken generates a JWT access token for the given user
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, error) {
	return lib.SignAccessToken(user.ID, user.Email, user.Role, as.cfg.Auth.AccessTokenSecret, as.cfg.Auth.AccessTokenExpiry)
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

// RevokeToken blacklists a token's jti until it would have expired, so a
// logged-out cookie can't be replayed
func (as *AuthService) RevokeToken(claims *structs.AuthClaims) error {
	return as.cacheService.BlacklistToken(claims.Jti, claims.Exp)
}

// IsTokenRevoked checks the blacklist for a token's jti
func (as *AuthService) IsTokenRevoked(claims *structs.AuthClaims) (bool, error) {
	return as.cacheService.IsTokenBlacklisted(claims.Jti)
}
