package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"meetupticket/internal/domain"
)

const issuer = "meetupticket"

type passClaims struct {
	jwt.RegisteredClaims
	EventID string `json:"eid"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Code    string `json:"code"`
}

type jwtSigner struct {
	secret []byte
	now    func() time.Time
}

// NewJWTSigner returns a TicketSigner that signs passes as HS256 JWTs with the given secret.
func NewJWTSigner(secret string) (domain.TicketSigner, error) {
	if secret == "" {
		return nil, errors.New("ticket secret is required")
	}
	return &jwtSigner{secret: []byte(secret), now: time.Now}, nil
}

func (s *jwtSigner) Sign(pass domain.TicketPass, ttl time.Duration) (string, error) {
	now := s.now()
	claims := passClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   pass.ParticipantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		EventID: pass.EventID,
		Name:    pass.Name,
		Email:   pass.Email,
		Code:    pass.Code,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign ticket: %w", err)
	}
	return tokenString, nil
}

func (s *jwtSigner) Open(tokenString string) (domain.TicketPass, error) {
	claims := &passClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.TicketPass{}, fmt.Errorf("parse ticket: %w", err)
	}
	if claims.Subject == "" {
		return domain.TicketPass{}, errors.New("ticket has no participant")
	}
	return domain.TicketPass{
		ParticipantID: claims.Subject,
		EventID:       claims.EventID,
		Name:          claims.Name,
		Email:         claims.Email,
		Code:          claims.Code,
	}, nil
}
