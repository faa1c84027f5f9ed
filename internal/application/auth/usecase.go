package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/access"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/jwt"
	"github.com/jhoicas/backoffice-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	// StrictRevocation rechaza tokens con época anterior a la actual del usuario.
	StrictRevocation bool
}

// SessionStore lista negra de tokens y época de sesión por usuario.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Epoch(ctx context.Context, userID int64) (int64, error)
	BumpEpoch(ctx context.Context, userID int64) error
}

// Authenticated sesión verificada de una petición junto con los claims del token.
type Authenticated struct {
	Session access.Session
	Claims  *jwt.Claims
}

// AuthUseCase casos de uso de autenticación: login, verificación de token y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions SessionStore
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions SessionStore, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg, log: log}
}

// Login verifica username/password y firma un token con la sesión del usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("username", in.Username).Msg("login: usuario inexistente")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Int64("user_id", user.ID).Msg("login: contraseña incorrecta")
		return nil, domain.ErrUnauthorized
	}

	session := SessionOf(user)
	epoch, err := uc.sessions.Epoch(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("leer época de sesión: %w", err)
	}
	p := session.Params()
	token, claims, err := jwt.Generate(jwt.Options{
		Secret:     uc.jwtCfg.Secret,
		Issuer:     uc.jwtCfg.Issuer,
		ExpMinutes: uc.jwtCfg.ExpMinutes,
	}, jwt.Payload{
		UserID:         p.UserID,
		Username:       p.Username,
		Role:           string(p.Role),
		LocationIDs:    p.LocationIDs,
		ProductLineIDs: p.ProductLineIDs,
		CustomerID:     p.CustomerID,
		Epoch:          epoch,
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      ToSessionResponse(session),
	}, nil
}

// Authenticate valida el token y reconstruye la sesión. Rechaza tokens revocados y,
// con revocación estricta, los emitidos antes del último cambio de rol o asignaciones.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Authenticated, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", claims.UserID).Msg("no se pudo consultar la lista negra")
		return nil, fmt.Errorf("consultar revocación: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	if uc.jwtCfg.StrictRevocation {
		current, err := uc.sessions.Epoch(ctx, claims.UserID)
		if err != nil {
			uc.log.Error().Err(err).Int64("user_id", claims.UserID).Msg("no se pudo leer la época de sesión")
			return nil, fmt.Errorf("leer época de sesión: %w", err)
		}
		if claims.Epoch < current {
			uc.log.Info().Int64("user_id", claims.UserID).Msg("token con época vencida")
			return nil, domain.ErrUnauthorized
		}
	}
	return &Authenticated{Session: SessionFromClaims(claims), Claims: claims}, nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil {
		return nil
	}
	if err := uc.sessions.Revoke(ctx, claims.ID, claims.TTL()); err != nil {
		uc.log.Error().Err(err).Int64("user_id", claims.UserID).Msg("logout: no se pudo revocar el token")
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

// SessionOf construye la sesión a partir del usuario persistido.
func SessionOf(u *entity.User) access.Session {
	return access.NewSession(access.SessionParams{
		UserID:         u.ID,
		Username:       u.Username,
		Role:           u.Role,
		LocationIDs:    u.LocationIDs,
		ProductLineIDs: u.ProductLineIDs,
		CustomerID:     u.CustomerID,
	})
}

// SessionFromClaims reconstruye la sesión firmada en el token.
func SessionFromClaims(c *jwt.Claims) access.Session {
	return access.NewSession(access.SessionParams{
		UserID:         c.UserID,
		Username:       c.Username,
		Role:           entity.Role(c.Role),
		LocationIDs:    c.LocationIDs,
		ProductLineIDs: c.ProductLineIDs,
		CustomerID:     c.CustomerID,
	})
}

// ToSessionResponse proyecta la sesión para /me.
func ToSessionResponse(s access.Session) dto.SessionResponse {
	p := s.Params()
	return dto.SessionResponse{
		UserID:         p.UserID,
		Username:       p.Username,
		Role:           string(p.Role),
		LocationIDs:    p.LocationIDs,
		ProductLineIDs: p.ProductLineIDs,
		CustomerID:     p.CustomerID,
	}
}
