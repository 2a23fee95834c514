package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/models"
)

const guestTTL = 24 * time.Hour

// POST /auth/guest
func CreateGuestUser(db *gorm.DB, secret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest_" + generateRandomString(16)

		guest := models.GuestUser{
			ID:        guestID,
			ExpiresAt: time.Now().Add(guestTTL),
		}

		if err := db.WithContext(c.Request.Context()).Create(&guest).Error; err != nil {
			logger.Error("create guest failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
			return
		}

		token, err := issueToken(secret, guestID, RoleGuest, guestTTL)
		if err != nil {
			logger.Error("guest token failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}

// PurgeExpiredGuests deletes guest rows past their expiry along with their carts.
func PurgeExpiredGuests(db *gorm.DB, now time.Time) (int64, error) {
	var expired []string
	if err := db.Model(&models.GuestUser{}).Where("expires_at < ?", now).Pluck("id", &expired).Error; err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id IN ?", expired).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", expired).Delete(&models.GuestUser{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(expired)), nil
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
