package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/driftpress/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookie = "oauth_state"

func (a *API) googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     a.cfg.GoogleClientID,
		ClientSecret: a.cfg.GoogleClientSecret,
		RedirectURL:  a.cfg.GoogleRedirectURL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GoogleStart 生成随机 state 并重定向到 Google 授权页
func (a *API) GoogleStart(c *gin.Context) {
	if a.cfg.GoogleClientID == "" {
		respondError(c, http.StatusNotImplemented, "google login is not configured")
		return
	}

	state, err := randomState()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate state")
		return
	}

	c.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusFound, a.googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GoogleCallback 校验 state 与 ID token，再建立管理员会话
func (a *API) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respondError(c, http.StatusBadRequest, "missing code or state")
		return
	}

	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || cookieState != state {
		respondError(c, http.StatusBadRequest, "invalid oauth state")
		return
	}

	tok, err := a.googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "failed to exchange code")
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		respondError(c, http.StatusUnauthorized, "missing id_token")
		return
	}

	claims, err := a.verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, err.Error())
		return
	}

	if !a.cfg.IsAdminEmail(claims.Email) {
		respondError(c, http.StatusForbidden, "account is not authorized for admin access")
		return
	}

	user, err := a.findOrCreateGoogleUser(claims)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyEmail, user.Email)
	session.Set(sessionKeyName, user.Name)
	session.Set(sessionKeyIsAdmin, true)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	if a.cfg.OAuthFrontendRedirect != "" {
		c.Redirect(http.StatusFound, a.cfg.OAuthFrontendRedirect)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": gin.H{
			"email":   user.Email,
			"name":    user.Name,
			"isAdmin": true,
		},
	})
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (a *API) verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: a.cfg.GoogleClientID})
	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

func (a *API) findOrCreateGoogleUser(gc *googleIDClaims) (db.User, error) {
	var user db.User

	if err := a.db.Where("google_sub = ?", gc.Sub).First(&user).Error; err == nil {
		return user, nil
	}

	if err := a.db.Where("email = ?", gc.Email).First(&user).Error; err == nil {
		if user.GoogleSub == nil {
			sub := gc.Sub
			user.GoogleSub = &sub
			user.AvatarURL = gc.Picture
			if err := a.db.Save(&user).Error; err != nil {
				return db.User{}, err
			}
		}
		return user, nil
	}

	sub := gc.Sub
	user = db.User{
		Username:  gc.Email,
		Email:     gc.Email,
		Name:      gc.Name,
		GoogleSub: &sub,
		AvatarURL: gc.Picture,
	}
	if err := a.db.Create(&user).Error; err != nil {
		return db.User{}, err
	}
	return user, nil
}
