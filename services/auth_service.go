package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agency-portal/dto"
	"github.com/agency-portal/models"
	"github.com/agency-portal/repositories"
	"github.com/agency-portal/utils"
)

// TokenTTL is how long a session token stays valid
const TokenTTL = 24 * time.Hour

// AuthService issues and checks session tokens
type AuthService struct {
	users  *repositories.UserRepository
	secret []byte
	now    func() time.Time
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{
		users:  repositories.NewUserRepository(),
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
		Redirect:  user.Role.Home(),
	}, nil
}

// GenerateToken generates a new JWT token for a user
func (s *AuthService) GenerateToken(user models.User) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	now := s.now()
	expiresAt := now.Add(TokenTTL)

	claims := dto.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if user.ClientID != nil {
		claims.ClientID = *user.ClientID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func (s *AuthService) ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if !claims.Role.Valid() || (claims.Role == models.RoleClient && claims.ClientID == "") {
		return nil, errors.New("invalid token role")
	}
	return claims, nil
}

// Principal converts validated claims into the request caller
func (s *AuthService) Principal(claims *dto.TokenClaims) dto.Principal {
	p := dto.Principal{Kind: claims.Role, UserID: claims.UserID, Email: claims.Email}
	if claims.Role == models.RoleClient {
		p.ClientID = claims.ClientID
	}
	return p
}

// ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return notFound(err, "user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.users.Update(ctx, user)
}

// CreateAdmin opens an admin account
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, nom string) (*models.User, error) {
	if len(password) < 8 {
		return nil, invalid("password must be at least 8 characters")
	}
	user, err := s.createUser(ctx, models.User{Email: email, Nom: nom, Role: models.RoleAdmin}, password)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateClientAccount opens a portal login bound to the client and returns the generated password
func (s *AuthService) CreateClientAccount(ctx context.Context, email, nom, clientID string) (string, error) {
	password, err := utils.GenerateSecurePassword(16)
	if err != nil {
		return "", err
	}
	_, err = s.createUser(ctx, models.User{Email: email, Nom: nom, Role: models.RoleClient, ClientID: &clientID}, password)
	if err != nil {
		return "", err
	}
	return password, nil
}

func (s *AuthService) createUser(ctx context.Context, user models.User, password string) (models.User, error) {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" {
		return models.User{}, invalid("email is required")
	}

	exists, err := s.users.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	if user.Password, err = hashPassword(password); err != nil {
		return models.User{}, err
	}
	return s.users.Create(ctx, user)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
