package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const SessionCookie = "sweeper_session"

type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(c CookiesConfig, j *JWT) *Cookies {
	sameSite := http.SameSiteStrictMode
	switch strings.ToUpper(c.SameSite) {
	case "DEFAULT":
		sameSite = http.SameSiteDefaultMode
	case "LAX":
		sameSite = http.SameSiteLaxMode
	case "STRICT":
		sameSite = http.SameSiteStrictMode
	case "NONE":
		sameSite = http.SameSiteNoneMode
	}

	return &Cookies{
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: sameSite,
		jwt:      j,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// Refresh issues a new signed cookie pointing at sessionID.
func (c *Cookies) Refresh(w http.ResponseWriter, sessionID string) error {
	token, err := c.jwt.Sign(NewSessionClaims(sessionID, c.jwt.Lifetime()))
	if err != nil {
		return fmt.Errorf("unable to sign session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		Value:    token,
		Expires:  time.Now().Add(c.jwt.Lifetime()),
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

func (c *Cookies) ParseSessionClaims(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, err
	}
	token, err := c.jwt.ParseWithClaims(cookie.Value, &SessionClaims{})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionID == "" {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
