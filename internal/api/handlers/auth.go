package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/garyiyer/testqandas/internal/db"
)

// HandleGoogleLogin initiates the Google OAuth flow.
func (h *Handler) HandleGoogleLogin(c *gin.Context) {
	session := sessions.Default(c)

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to generate state", err)
		return
	}
	state := base64.URLEncoding.EncodeToString(stateBytes)

	session.Set(OauthStateSessionKey, state)
	if err := session.Save(); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to save session", err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.OauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// HandleGoogleCallback handles the redirect back from Google, upserts
// the user record and stores the profile in the session.
func (h *Handler) HandleGoogleCallback(c *gin.Context) {
	session := sessions.Default(c)
	retrievedState := session.Get(OauthStateSessionKey)
	originalState := c.Query("state")

	if originalState == "" || retrievedState == nil || retrievedState.(string) != originalState {
		log.Printf("WARN: Invalid OAuth state. Session state: %v, query state: %s", retrievedState, originalState)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid state parameter."})
		return
	}

	ctx := c.Request.Context()
	token, err := h.OauthConfig.Exchange(ctx, c.Query("code"))
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to exchange code", err)
		return
	}
	if !token.Valid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Retrieved invalid token"})
		return
	}

	client := h.OauthConfig.Client(ctx, token)
	oauth2Service, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to create OAuth2 service", err)
		return
	}
	userinfo, err := oauth2Service.Userinfo.V2.Me.Get().Do()
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to get user info", err)
		return
	}

	dbUser, err := h.DB.GetUserByEmail(ctx, userinfo.Email)
	if err != nil {
		if !errors.Is(err, db.ErrUserNotFound) {
			h.respondError(c, http.StatusInternalServerError, "Database error checking user profile", err)
			return
		}
		log.Printf("INFO: User with email %s not found, creating new user.", userinfo.Email)
		dbUser, err = h.DB.CreateUser(ctx, userinfo.Email, userinfo.Name, userinfo.Id, userinfo.Picture)
		if err != nil {
			h.respondError(c, http.StatusInternalServerError, "Failed to create user profile", err)
			return
		}
		log.Printf("INFO: Created user %s for email %s", dbUser.ID, dbUser.Email)
	} else {
		log.Printf("INFO: Found existing user %s for email %s", dbUser.ID, dbUser.Email)
	}

	profile := UserProfile{
		DatabaseID:    dbUser.ID,
		GoogleID:      userinfo.Id,
		Email:         userinfo.Email,
		VerifiedEmail: userinfo.VerifiedEmail != nil && *userinfo.VerifiedEmail,
		Name:          userinfo.Name,
		Picture:       userinfo.Picture,
	}

	session.Set(ProfileSessionKey, profile)
	session.Delete(OauthStateSessionKey)
	if err := session.Save(); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to save session", err)
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "/"
	}
	c.Redirect(http.StatusTemporaryRedirect, frontendURL)
}

// HandleAuthStatus reports whether the caller has a valid session.
func (h *Handler) HandleAuthStatus(c *gin.Context) {
	session := sessions.Default(c)
	profile, ok := session.Get(ProfileSessionKey).(UserProfile)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "email": profile.Email})
}

// HandleUserProfile returns the authenticated user's profile.
func (h *Handler) HandleUserProfile(c *gin.Context) {
	session := sessions.Default(c)
	profile, ok := session.Get(ProfileSessionKey).(UserProfile)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated or session invalid"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// HandleLogout clears the session.
func (h *Handler) HandleLogout(c *gin.Context) {
	session := sessions.Default(c)
	if profile, ok := session.Get(ProfileSessionKey).(UserProfile); ok {
		log.Printf("INFO: Logging out user %s (ID: %s)", profile.Email, profile.DatabaseID)
	}

	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.respondError(c, http.StatusInternalServerError, "Failed to clear session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
