package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/charm-studio-api/dbtest"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

var secret = []byte("test-secret")

func TestUserTokenRoundTrip(t *testing.T) {
	tok, err := IssueUserToken(secret, "u-1", time.Hour)
	require.NoError(t, err)

	a, err := ParseToken(secret, "Bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, &Actor{ID: "u-1", Role: RoleUser}, a)
	assert.True(t, a.Authenticated())
}

func TestParseTokenRejects(t *testing.T) {
	expired, err := IssueUserToken(secret, "u-1", -time.Minute)
	require.NoError(t, err)
	other, err := IssueUserToken([]byte("other"), "u-1", time.Hour)
	require.NoError(t, err)
	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "user"}).SignedString(secret)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"empty":     "",
		"garbage":   "not-a-jwt",
		"expired":   expired,
		"wrong key": other,
		"no id":     noID,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(secret, raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestGuestIsNotAuthenticated(t *testing.T) {
	var nobody *Actor
	assert.False(t, nobody.Authenticated())
	assert.False(t, (&Actor{ID: "guest_x", Role: RoleGuest}).Authenticated())
}

func TestCreateGuestUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	r := gin.New()
	r.POST("/auth/guest", CreateGuestUser(db, secret, zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/guest", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		GuestID string `json:"guest_id"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.GuestID, "guest_")

	a, err := ParseToken(secret, body.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleGuest, a.Role)
	assert.Equal(t, body.GuestID, a.ID)

	var count int64
	require.NoError(t, db.Model(&models.GuestUser{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPurgeExpiredGuests(t *testing.T) {
	db := dbtest.Open(t)
	now := time.Now()
	require.NoError(t, db.Create(&models.GuestUser{ID: "guest_old", ExpiresAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&models.GuestUser{ID: "guest_new", ExpiresAt: now.Add(time.Hour)}).Error)
	require.NoError(t, models.ReplaceCartLines(db, "guest_old", []models.CartLine{{ID: "l1", BraceletID: 1, Charms: []byte("[]")}}))

	n, err := PurgeExpiredGuests(db, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	lines, err := models.LoadCartLines(db, "guest_old")
	require.NoError(t, err)
	assert.Empty(t, lines)

	var left []string
	require.NoError(t, db.Model(&models.GuestUser{}).Pluck("id", &left).Error)
	assert.Equal(t, []string{"guest_new"}, left)
}
