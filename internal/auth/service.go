package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"backend-erickshaw/internal/db"
	"backend-erickshaw/internal/logger"
	"backend-erickshaw/internal/profile"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleNotAllowed     = errors.New("role cannot be self-assigned")
)

// ProfileCreator stores the profile document created alongside a new
// account, on the caller's transaction.
type ProfileCreator interface {
	CreateProfileWith(ctx context.Context, q db.Querier, p profile.Profile) (profile.Profile, error)
}

type Service struct {
	secret   []byte
	db       db.Querier
	profiles ProfileCreator
	admins   map[string]struct{}
}

type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	hashPasswordFn    = bcrypt.GenerateFromPassword
	parseWithClaimsFn = jwt.ParseWithClaims
	signTokenFn       = (*Service).signToken
)

func NewService(secret string, db db.Querier, profiles ProfileCreator) *Service {
	return &Service{
		secret:   []byte(secret),
		db:       db,
		profiles: profiles,
		admins:   map[string]struct{}{},
	}
}

// SetAdminEmails lists the accounts that register as admin. Nobody else can
// obtain the admin role through registration.
func (s *Service) SetAdminEmails(emails []string) {
	s.admins = make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			s.admins[e] = struct{}{}
		}
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return User{}, TokenResponse{}, errors.New("email and password required")
	}
	if req.Role == "" {
		req.Role = profile.RoleStudent
	}
	if !profile.ValidRole(req.Role) {
		return User{}, TokenResponse{}, profile.ErrInvalidRole
	}
	if _, ok := s.admins[normalizeEmail(req.Email)]; ok {
		req.Role = profile.RoleAdmin
	} else if req.Role == profile.RoleAdmin {
		return User{}, TokenResponse{}, ErrRoleNotAllowed
	}
	hash, err := hashPasswordFn([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, TokenResponse{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	// The account and its profile are written together so a failed profile
	// insert leaves the email free to register again.
	err = db.WithTx(ctx, s.db, func(tx db.Querier) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO users (id, email, password_hash, role)
			VALUES ($1,$2,$3,$4)
			RETURNING created_at, updated_at
		`, user.ID, user.Email, user.PasswordHash, user.Role)
		if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}
		if s.profiles == nil {
			return nil
		}
		_, err := s.profiles.CreateProfileWith(ctx, tx, profile.Profile{
			UID:    user.ID,
			Name:   req.Name,
			Roll:   req.Roll,
			Email:  req.Email,
			Hostel: req.Hostel,
			Role:   req.Role,
		})
		return err
	})
	if err != nil {
		return User{}, TokenResponse{}, err
	}

	tokens, err := s.GenerateTokens(ctx, user.ID, user.Role)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	logger.For("auth").WithField("user_id", user.ID).WithField("role", user.Role).Info("user registered")
	return user, tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, TokenResponse, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1
	`, req.Email)

	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return User{}, TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, TokenResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.GenerateTokens(ctx, user.ID, user.Role)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) GenerateTokens(ctx context.Context, userID, role string) (TokenResponse, error) {
	access, err := signTokenFn(s, userID, role, TokenTypeAccess, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := signTokenFn(s, userID, role, TokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.saveRefreshToken(ctx, refresh, userID, refreshTokenTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
		Role:         role,
	}, nil
}

// ValidateRefreshToken checks the token signature and that it is still on
// record and unexpired. The returned claims carry the account's current role.
func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.parseToken(token, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, role, expiresAt, err := s.lookupRefreshToken(ctx, token)
	if err != nil || userID != claims.UserID || time.Now().After(expiresAt) {
		return nil, errors.New("refresh token invalid")
	}
	claims.Role = role
	return claims, nil
}

func (s *Service) ValidateAccessToken(token string) (*Claims, error) {
	return s.parseToken(token, TokenTypeAccess)
}

func (s *Service) signToken(userID, role, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token, tokenType string) (*Claims, error) {
	return parseClaims(token, s.secret, tokenType)
}

func parseClaims(token string, secret []byte, tokenType string) (*Claims, error) {
	parsed, err := parseWithClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	if claims.TokenType != tokenType {
		return nil, errors.New("wrong token type")
	}
	return claims, nil
}

func (s *Service) saveRefreshToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), userID, token, time.Now().Add(ttl))
	return err
}

func (s *Service) lookupRefreshToken(ctx context.Context, token string) (string, string, time.Time, error) {
	row := s.db.QueryRow(ctx, `
		SELECT rt.user_id, u.role, rt.expires_at
		FROM refresh_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1 AND rt.revoked_at IS NULL
	`, token)
	var userID, role string
	var expiresAt time.Time
	if err := row.Scan(&userID, &role, &expiresAt); err != nil {
		return "", "", time.Time{}, err
	}
	return userID, role, expiresAt, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
