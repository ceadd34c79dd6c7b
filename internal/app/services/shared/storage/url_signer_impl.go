package storage

import (
	"errors"
	"fmt"
	"patient-registry-service/internal/app/contracts"
	"patient-registry-service/internal/pkg/constvars"
	"patient-registry-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const artifactRefClaim = "ref"

type jwtURLSigner struct {
	secret  []byte
	baseURL string
}

// NewJWTURLSigner signs links of the form <baseURL>/<token>, where the token carries the artifact ref.
func NewJWTURLSigner(secret, baseURL string) contracts.ArtifactURLSigner {
	return &jwtURLSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *jwtURLSigner) SignArtifactURL(ref string, expiry time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		artifactRefClaim: ref,
		"exp":            time.Now().Add(expiry).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", exceptions.ErrArtifactLinkSign(err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, tokenString), nil
}

func (s *jwtURLSigner) ParseArtifactToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(constvars.ErrDevAuthSigningMethod)
		}
		return s.secret, nil
	})
	if err != nil {
		return "", exceptions.ErrArtifactLinkInvalid(err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if ref, ok := claims[artifactRefClaim].(string); ok && IsValidReference(ref) {
			return ref, nil
		}
	}

	return "", exceptions.ErrArtifactLinkInvalid(errors.New(constvars.ErrDevArtifactTokenInvalid))
}
