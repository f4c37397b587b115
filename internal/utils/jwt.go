package utils

import (
	"errors"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID   string
	UserName string
	Role     string
}

var (
	hmacSecret []byte
	jwks       *keyfunc.JWKS
)

// InitJWT configures token verification. The HMAC secret signs and
// verifies locally issued tokens; jwksURL is optional and additionally
// accepts RS256 tokens from an external identity provider.
func InitJWT(secret, jwksURL string) error {
	hmacSecret = []byte(secret)
	if jwksURL == "" {
		return nil
	}
	var err error
	jwks, err = keyfunc.Get(jwksURL, keyfunc.Options{})
	return err
}

// IssueToken signs a 24h HS256 token for a locally authenticated user.
func IssueToken(userID, userName, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      userID,
		"userName": userName,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(hmacSecret)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims, err := parseHS256(tokenString)
	if err == nil {
		return claims, nil
	}
	if jwks != nil {
		return parseJWKS(tokenString)
	}
	return nil, err
}

func parseHS256(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return hmacSecret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claimsFromToken(token)
}

func parseJWKS(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
	)
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claimsFromToken(token)
}

func claimsFromToken(token *jwt.Token) (*Claims, error) {
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	sub, _ := mapClaims["sub"].(string)
	userName, _ := mapClaims["userName"].(string)
	role, _ := mapClaims["role"].(string)
	if sub == "" {
		return nil, errors.New("invalid claims")
	}
	return &Claims{UserID: sub, UserName: userName, Role: role}, nil
}
