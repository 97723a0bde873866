package authentication

import (
	"errors"
	"time"

	"gatherly/core/app/users"
	"gatherly/core/config"
	"gatherly/core/emitter"
	"gatherly/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const LoginEvent = "authentication.login"

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	db          *gorm.DB
	userService *users.UserService
	emitter     *emitter.Emitter
	logger      logger.Logger
	jwtSecret   []byte
	jwtExpiry   time.Duration
}

func NewAuthService(db *gorm.DB, userService *users.UserService, emitter *emitter.Emitter, logger logger.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:          db,
		userService: userService,
		emitter:     emitter,
		logger:      logger,
		jwtSecret:   []byte(cfg.JWTSecret),
		jwtExpiry:   time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

// Register creates a new account and returns a token for it.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	user, err := s.userService.Create(&users.CreateUserRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and returns a token.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.userService.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", logger.String("error", err.Error()))
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.db.Model(user).Update("last_login", &now).Error; err != nil {
		s.logger.Warn("failed to record last login", logger.Uint("user_id", user.Id))
	}

	s.emitter.Emit(LoginEvent, user)

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *users.User) (*AuthResponse, error) {
	expiresAt := time.Now().Add(s.jwtExpiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.Id,
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("failed to sign token", logger.String("error", err.Error()))
		return nil, err
	}

	return &AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtExpiry.Seconds()),
		User:        user.ToResponse(),
	}, nil
}
