package config

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationJSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, 90*time.Second, d.Duration)

	require.NoError(t, json.Unmarshal([]byte(`1000`), &d))
	assert.Equal(t, time.Microsecond, d.Duration)

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	b, err := json.Marshal(Duration{time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"1m0s"`, string(b))
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 15, c.Game.Width)
	assert.Equal(t, 15, c.Game.Height)
	assert.Equal(t, 0.2, c.Game.MineProbability)
	assert.False(t, c.Development())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
		"mode": "development",
		"addr": ":9000",
		"game": {"width": 9, "height": 9, "mine_probability": 0.1},
		"session": {"ttl": "1h", "sweep_every": "1m"}
	}`), 0o600)
	require.NoError(t, err)

	t.Setenv("SWEEPER_HEIGHT", "12")
	t.Setenv("SWEEPER_SEED", "42")

	c, err := Load(path)
	require.NoError(t, err)
	assert.True(t, c.Development())
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, 9, c.Game.Width)
	assert.Equal(t, 12, c.Game.Height)
	assert.Equal(t, uint64(42), c.Game.Seed)
	assert.Equal(t, time.Hour, c.Session.TTL.Duration)
}

func TestLoadGameParamsEnv(t *testing.T) {
	t.Setenv("SWEEPER_GAME", "8:6:0.3")
	t.Setenv("SWEEPER_WIDTH", "10")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10, c.Game.Width)
	assert.Equal(t, 6, c.Game.Height)
	assert.Equal(t, 0.3, c.Game.MineProbability)

	t.Setenv("SWEEPER_GAME", "8:6")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadRejectsBadGame(t *testing.T) {
	t.Setenv("SWEEPER_MINE_PROBABILITY", "2")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("SWEEPER_MINE_PROBABILITY", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestSessionCookieRoundTrip(t *testing.T) {
	j, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)
	cookies := NewCookies(CookiesConfig{SameSite: "lax"}, j)
	assert.Equal(t, http.SameSiteLaxMode, cookies.SameSite)

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.Refresh(rec, "17"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}

	claims, err := cookies.ParseSessionClaims(r)
	require.NoError(t, err)
	assert.Equal(t, "17", claims.SessionID)
}

func TestSessionCookieWrongSecret(t *testing.T) {
	a, err := NewJWT("one", time.Hour)
	require.NoError(t, err)
	b, err := NewJWT("", time.Hour)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, NewCookies(CookiesConfig{}, a).Refresh(rec, "1"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}

	_, err = NewCookies(CookiesConfig{}, b).ParseSessionClaims(r)
	assert.Error(t, err)
}
