package middleware

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/utils"
)

const (
	// Context keys set for authenticated requests.
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"

	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Authenticator resolves bearer tokens into the identity the exam service
// needs: user id, username and role. The identity provider itself is opaque.
type Authenticator interface {
	ParseToken(token string) (userID, username, role string, err error)
}

type casdoorAuthenticator struct {
	client *casdoorsdk.Client
}

// NewCasdoorAuthenticator wires the casdoor identity provider.
func NewCasdoorAuthenticator(cfg *config.Config) Authenticator {
	client := casdoorsdk.NewClient(
		cfg.CasdoorEndpoint,
		cfg.CasdoorClientID,
		cfg.CasdoorClientSecret,
		cfg.CasdoorCertificate,
		cfg.CasdoorOrganization,
		cfg.CasdoorApplication,
	)
	return &casdoorAuthenticator{client: client}
}

func (a *casdoorAuthenticator) ParseToken(token string) (string, string, string, error) {
	claims, err := a.client.ParseJwtToken(token)
	if err != nil {
		return "", "", "", err
	}

	role := RoleStudent
	if claims.User.IsAdmin || claims.User.Tag == RoleTeacher {
		role = RoleTeacher
	}
	return claims.User.Id, claims.User.Name, role, nil
}

// AuthRequired rejects requests without a valid bearer token and stores the
// resolved identity in the gin context.
func AuthRequired(auth Authenticator, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Missing bearer token",
			})
			return
		}

		userID, username, role, err := auth.ParseToken(token)
		if err != nil {
			logger.Warn("Rejected invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, username)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// TeacherRequired gates the administrative routes (catalog import, result
// purge). Must run after AuthRequired.
func TeacherRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role := c.GetString(ContextRole); role != RoleTeacher {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Teacher role required",
			})
			return
		}
		c.Next()
	}
}
