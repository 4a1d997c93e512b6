package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"infograph-be/internal/dto"
	"infograph-be/internal/entity"
	"infograph-be/internal/pkg/apperror"
	"infograph-be/internal/pkg/logger"
	"infograph-be/internal/repository/specification"
	"infograph-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"

// googleClaims is the subset of the tokeninfo response the login flow reads.
type googleClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Aud   string `json:"aud"`
}

type IAuthService interface {
	LoginWithGoogle(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.LoginResponse, error)
	CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	IssueToken(user *entity.User) (string, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	jwtSecret      string
	googleClientID string
	logger         logger.ILogger

	// verifyCredential is swapped in tests to avoid the network.
	verifyCredential func(ctx context.Context, credential string) (*googleClaims, error)
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret, googleClientID string, sysLogger logger.ILogger) IAuthService {
	s := &authService{
		uowFactory:     uowFactory,
		jwtSecret:      jwtSecret,
		googleClientID: googleClientID,
		logger:         sysLogger,
	}
	s.verifyCredential = s.fetchTokenInfo
	return s
}

// LoginWithGoogle verifies the Google ID token, upserts the user keyed by
// the Google subject, and issues a session JWT.
func (s *authService) LoginWithGoogle(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.LoginResponse, error) {
	if s.googleClientID == "" {
		return nil, apperror.NewUnauthorized("Google client ID not configured")
	}

	claims, err := s.verifyCredential(ctx, req.Credential)
	if err != nil {
		return nil, apperror.NewUnauthorized("Invalid Google credential")
	}
	if claims.Aud != s.googleClientID {
		return nil, apperror.NewUnauthorized("Credential issued for another client")
	}
	if claims.Sub == "" || claims.Email == "" {
		return nil, apperror.NewUnauthorized("Credential missing required claims")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByGoogleID{GoogleID: claims.Sub})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Email:     claims.Email,
			Name:      claims.Name,
			GoogleId:  claims.Sub,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("auth", "New user registered", map[string]interface{}{
			"user_id": user.Id.String(),
		})
	} else if user.Email != claims.Email || user.Name != claims.Name {
		user.Email = claims.Email
		user.Name = claims.Name
		user.UpdatedAt = now
		if err := uow.UserRepository().Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:  userToResponse(user),
		Token: token,
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewUnauthorized("User not found")
	}
	resp := userToResponse(user)
	return &resp, nil
}

// IssueToken signs a 24h HS256 token. "sub" carries the internal user id,
// not the Google subject.
func (s *authService) IssueToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.Id.String(),
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) fetchTokenInfo(ctx context.Context, credential string) (*googleClaims, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", tokenInfoEndpoint, url.QueryEscape(credential))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	var claims googleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

func userToResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
