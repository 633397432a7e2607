package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/handwerkos/backend/internal/infrastructure/config"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrMissingCompanyID = errors.New("missing company_id in claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
)

// Claims carries the authenticated user profile inside the JWT. Role
// flags gate guard checks such as timesheet approval.
type Claims struct {
	jwt.RegisteredClaims
	CompanyID      string `json:"company_id"`
	UserID         string `json:"user_id"`
	Username       string `json:"username"`
	Admin          bool   `json:"admin,omitempty"`
	ProjectManager bool   `json:"project_manager,omitempty"`
}

// Principal is the decoded identity attached to each request
type Principal struct {
	CompanyID      uuid.UUID
	UserID         uuid.UUID
	Username       string
	Admin          bool
	ProjectManager bool
}

// CanApprove reports whether the user may approve timesheets and expenses
func (p Principal) CanApprove() bool {
	return p.Admin || p.ProjectManager
}

// JWTService signs and validates tokens
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a JWT service from configuration
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.TokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// Generate signs a token for the given principal
func (s *JWTService) Generate(p Principal) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   p.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		CompanyID:      p.CompanyID.String(),
		UserID:         p.UserID.String(),
		Username:       p.Username,
		Admin:          p.Admin,
		ProjectManager: p.ProjectManager,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses the token and returns the principal it identifies
func (s *JWTService) Validate(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		return nil, ErrMissingCompanyID
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrMissingUserID
	}

	return &Principal{
		CompanyID:      companyID,
		UserID:         userID,
		Username:       claims.Username,
		Admin:          claims.Admin,
		ProjectManager: claims.ProjectManager,
	}, nil
}
