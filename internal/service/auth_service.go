package service

import (
	"context"
	"errors"
	"time"

	"cicloharmony/internal/config"
	"cicloharmony/internal/dto"
	"cicloharmony/internal/model"
	"cicloharmony/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error)
	ListAdmins(ctx context.Context) ([]dto.AdminResponse, error)
	UpdateAdmin(ctx context.Context, id uuid.UUID, req dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	DeactivateAdmin(ctx context.Context, id uuid.UUID) error
	ReactivateAdmin(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.AdminUserRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	// Same generic message for unknown email and wrong password.
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	now := time.Now().UTC()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("email", user.Email).Msg("auth: last_login update failed")
	}
	user.LastLoginAt = &now

	return s.buildLoginResponse(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return nil, errors.New("usuario no encontrado o inactivo")
	}

	return s.buildLoginResponse(user)
}

func (s *authService) CreateAdmin(ctx context.Context, req dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.AdminUser{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := toAdminResponse(user)
	return &resp, nil
}

func (s *authService) ListAdmins(ctx context.Context) ([]dto.AdminResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AdminResponse, len(users))
	for i := range users {
		resp[i] = toAdminResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) UpdateAdmin(ctx context.Context, id uuid.UUID, req dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := toAdminResponse(user)
	return &resp, nil
}

func (s *authService) DeactivateAdmin(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

func (s *authService) ReactivateAdmin(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, true)
}

func (s *authService) buildLoginResponse(user *model.AdminUser) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         toAdminResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.AdminUser, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toAdminResponse(u *model.AdminUser) dto.AdminResponse {
	var lastLogin *string
	if u.LastLoginAt != nil {
		v := u.LastLoginAt.UTC().Format(time.RFC3339)
		lastLogin = &v
	}
	return dto.AdminResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Active:      u.Active,
		LastLoginAt: lastLogin,
	}
}
