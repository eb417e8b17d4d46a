package middleware

import (
	"errors"
	"strings"

	"tracker/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var errTokenPayload = errors.New("invalid token payload")

// JWTMiddleware authenticates Bearer tokens issued by the identity provider
// and sets the "userId" (uint) and "role" locals
func JWTMiddleware(c *fiber.Ctx) error {
	tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTKey), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}
	c.Locals("userId", userID)
	if role, ok := claims["role"].(string); ok {
		c.Locals("role", role)
	}
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// JWT numbers decode as float64
func userIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["userId"].(float64)
	if !ok || raw < 1 || raw != float64(uint(raw)) {
		return 0, errTokenPayload
	}
	return uint(raw), nil
}
