package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cyphera/cyphera-relay/internal/constants"
	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	callerKey   = "caller"
	authTypeKey = "authType"
)

var (
	// ErrMissingToken is returned when no bearer token is present
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken is returned when the token fails verification
	ErrInvalidToken = errors.New("invalid token")
)

// CallerClaims are the claims accepted from API tokens. The subject is the
// caller's address; roles are never taken from the token.
type CallerClaims struct {
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewAuthenticator creates an authenticator for tokens signed with secret.
// An empty issuer accepts any issuer.
func NewAuthenticator(secret []byte, issuer string) *Authenticator {
	return &Authenticator{secret: secret, issuer: issuer, leeway: time.Minute}
}

// ParseCaller validates tokenString and returns the address in its subject
func (a *Authenticator) ParseCaller(tokenString string) (common.Address, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(a.leeway),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	claims := &CallerClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	caller, err := helpers.ParseAddress(claims.Subject)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: subject: %v", ErrInvalidToken, err)
	}
	return caller, nil
}

// IssueToken signs a token for caller valid for ttl
func (a *Authenticator) IssueToken(caller common.Address, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.Hex(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// EnsureAuth rejects requests without a valid bearer token and stores the
// caller address in the context
func (a *Authenticator) EnsureAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrMissingToken.Error()})
			return
		}

		caller, err := a.ParseCaller(token)
		if err != nil {
			logger.Log.Debug("Token rejected",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("correlation_id", GetCorrelationID(c)),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		c.Set(callerKey, caller)
		c.Set(authTypeKey, constants.AuthTypeJWT)
		c.Next()
	}
}

// CallerFromContext returns the authenticated caller, if any
func CallerFromContext(c *gin.Context) (common.Address, bool) {
	v, exists := c.Get(callerKey)
	if !exists {
		return common.Address{}, false
	}
	caller, ok := v.(common.Address)
	return caller, ok
}
