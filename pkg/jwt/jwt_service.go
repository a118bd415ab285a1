package jwt

import (
	"errors"
	"fmt"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userId string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserIDByToken(token string) (string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
	}
)

const issuer = "FOODGRAM"

func NewJWTService() JWTService {
	return NewJWTServiceWithSecret(
		utils.GetConfig("JWT_SECRET"),
		time.Duration(utils.GetConfigInt("JWT_TTL_MINUTES", 60*24))*time.Minute,
	)
}

func NewJWTServiceWithSecret(secret string, ttl time.Duration) JWTService {
	if secret == "" {
		log.Warn("JWT_SECRET is empty, tokens are signed with an empty key")
	}
	return &jwtService{
		secretKey: secret,
		issuer:    issuer,
		ttl:       ttl,
	}
}

func (j *jwtService) GenerateTokenUser(userId string) (string, error) {
	now := time.Now()
	claims := jwtUserClaim{
		userId,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		log.Errorf("sign token: %v", err)
		return "", err
	}
	return signed, nil
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, error) {
	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" || claims.Issuer != j.issuer {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}
