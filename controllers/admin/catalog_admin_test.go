package adminController

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/dbtest"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Seeded(t)
	assets, err := catalog.NewAssetHost("")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/bracelets", CreateBracelet(db, assets, zap.NewNop()))
	r.POST("/charms", CreateCharm(db, assets, zap.NewNop()))
	r.DELETE("/charms/:id", DeleteCharm(db, assets, zap.NewNop()))
	return r, db
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateCharmWithImageURL(t *testing.T) {
	r, db := newAdminRouter(t)

	w := postForm(r, "/charms", url.Values{
		"name":       {"Clover"},
		"price":      {"7.25"},
		"image_url":  {"https://cdn.example.com/clover.png"},
		"categories": {"Love, luck,"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Charm
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "https://cdn.example.com/clover.png", created.Image)
	assert.InDelta(t, 7.25, created.Price, 1e-9)

	var stored models.Charm
	require.NoError(t, db.Preload("Categories").First(&stored, created.ID).Error)
	assert.True(t, stored.HasCategory("love"))
	assert.True(t, stored.HasCategory("luck"))

	var loveCount int64
	require.NoError(t, db.Model(&models.CharmCategory{}).Where("name = ?", "love").Count(&loveCount).Error)
	assert.Equal(t, int64(1), loveCount)
}

func TestCreateCharmRejectsBadInput(t *testing.T) {
	r, _ := newAdminRouter(t)

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing price", url.Values{"name": {"X"}, "image_url": {"https://x/y.png"}}},
		{"negative price", url.Values{"name": {"X"}, "price": {"-1"}, "image_url": {"https://x/y.png"}}},
		{"missing image", url.Values{"name": {"X"}, "price": {"3"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, postForm(r, "/charms", tt.form).Code)
		})
	}
}

func TestCreateBracelet(t *testing.T) {
	r, _ := newAdminRouter(t)

	w := postForm(r, "/bracelets", url.Values{
		"name":           {"Rope"},
		"price":          {"19"},
		"image_url":      {"https://cdn.example.com/rope.png"},
		"open_image_url": {"https://cdn.example.com/rope-open.png"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b models.Bracelet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	assert.Equal(t, "https://cdn.example.com/rope-open.png", b.OpenImage)
}

func TestDeleteCharm(t *testing.T) {
	r, db := newAdminRouter(t)

	do := func(path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("/charms/1"))
	assert.Equal(t, http.StatusNotFound, do("/charms/1"))
	assert.Equal(t, http.StatusBadRequest, do("/charms/abc"))

	var remaining int64
	require.NoError(t, db.Model(&models.Charm{}).Count(&remaining).Error)
	assert.Equal(t, int64(3), remaining)
}
