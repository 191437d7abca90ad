package middleware

import (
	"fab/config"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateAdminJWT issues a short-lived admin token signed with the JWT secret
func GenerateAdminJWT(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// AdminAuth guards admin endpoints. The bearer token must be either the
// configured service key itself (server-to-server) or an admin JWT signed
// with the JWT secret. When no service key is configured, admin operations
// fail fast instead of silently degrading.
func AdminAuth(c *fiber.Ctx) error {
	if config.AppConfig.AdminServiceKey == "" {
		return ErrorResponse(c, fiber.StatusInternalServerError, CodeServiceNotConfigured,
			"Admin operations are not configured on this server!")
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized,
			"Missing or invalid Authorization header")
	}

	tokenString := authHeader[len("Bearer "):]

	// Direct service-key match for server-to-server callers
	if tokenString == config.AppConfig.AdminServiceKey {
		c.Locals("adminSubject", "service-key")
		return c.Next()
	}

	// Otherwise expect an admin JWT
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return ErrorResponse(c, fiber.StatusUnauthorized, CodeUnauthorized, "Invalid token payload")
	}

	if sub, ok := claims["sub"].(string); ok {
		c.Locals("adminSubject", sub)
	}
	return c.Next()
}
