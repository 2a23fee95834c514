package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junaidrashid-git/charm-studio-api/dbtest"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

func line(id string, seq int) models.CartLine {
	return models.CartLine{ID: id, Seq: seq, BraceletID: 1, Charms: []byte("[]")}
}

func ids(lines []models.CartLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.ID
	}
	return out
}

func TestReplaceCartLinesKeepsOrder(t *testing.T) {
	db := dbtest.Open(t)

	require.NoError(t, models.ReplaceCartLines(db, "o", []models.CartLine{line("a", 0), line("b", 1)}))
	// drop a, then append c: b moves to seq 0 so c cannot tie with it
	require.NoError(t, models.ReplaceCartLines(db, "o", []models.CartLine{line("b", 0), line("c", 1)}))

	got, err := models.LoadCartLines(db, "o")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(got))
	assert.Equal(t, "o", got[0].OwnerID)

	require.NoError(t, models.ClearCartLines(db, "o"))
	got, err = models.LoadCartLines(db, "o")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := dbtest.Seeded(t)
	require.NoError(t, models.Seed(db))

	var bracelets, charms int64
	require.NoError(t, db.Model(&models.Bracelet{}).Count(&bracelets).Error)
	require.NoError(t, db.Model(&models.Charm{}).Count(&charms).Error)
	assert.EqualValues(t, 3, bracelets)
	assert.EqualValues(t, 4, charms)
}

func TestCharmHelpers(t *testing.T) {
	c := models.Charm{Categories: []models.CharmCategory{{Name: "love"}}}
	assert.True(t, c.HasCategory("love"))
	assert.False(t, c.HasCategory("sky"))

	cp := c.Clone()
	cp.Categories[0].Name = "sky"
	assert.Equal(t, "love", c.Categories[0].Name)
}
