package services

import (
	"errors"
	"strings"
	"time"

	"iniva-cms/config"
	"iniva-cms/models"
	"iniva-cms/repositories"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used for every stored password.
const PasswordCost = 12

var errInvalidCredentials = models.ErrorUnauthorized{Message: "invalid credentials"}

type AuthService interface {
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(req models.CreateUserRequest) (*models.User, error)
	ListUsers() ([]models.User, error)
	ParseToken(tokenString string) (*models.Claims, error)
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWTConfig
	now      func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, jwtConfig config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwt: jwtConfig, now: time.Now}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, classify(err, "user")
	}

	if !user.Active {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, models.Internal("failed to sign token", err)
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *authService) GetUserByID(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, classify(err, "user")
	}
	return user, nil
}

func (s *authService) CreateUser(req models.CreateUserRequest) (*models.User, error) {
	email := models.NormalizeEmail(req.Email)
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, models.ErrorConflict{Message: "user already exists"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, classify(err, "user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleEditor
	}
	if !role.Valid() {
		return nil, invalid("invalid role", "role")
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, models.Internal("failed to hash password", err)
	}

	user := &models.User{
		Email:    email,
		Name:     req.Name,
		Password: hashed,
		Role:     role,
		Active:   true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, classify(err, "user")
	}
	return user, nil
}

func (s *authService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, classify(err, "user")
	}
	return users, nil
}

func (s *authService) ParseToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwt.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrorUnauthorized{Message: "invalid token"}
	}
	return claims, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()

	claims := models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwt.Secret)
}
