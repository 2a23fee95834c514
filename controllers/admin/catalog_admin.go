package adminController

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

// formImage resolves an image form field: an uploaded file goes to the asset
// host, otherwise the "<field>_url" value is stored as-is.
func formImage(c *gin.Context, assets *catalog.AssetHost, field, folder string) (string, string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return strings.TrimSpace(c.PostForm(field + "_url")), "", nil
	}
	f, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	return assets.Upload(c.Request.Context(), f, folder)
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}

// POST /admin/bracelets
func CreateBracelet(db *gorm.DB, assets *catalog.AssetHost, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := parsePrice(priceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		image, imageID, err := formImage(c, assets, "image", "bracelets")
		if err != nil {
			logger.Error("bracelet image upload failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}
		openImage, openImageID, err := formImage(c, assets, "open_image", "bracelets")
		if err != nil {
			logger.Error("bracelet open image upload failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to save open image: %v", err)})
			return
		}

		bracelet := models.Bracelet{
			Name:              name,
			Description:       c.PostForm("description"),
			Price:             price,
			Image:             image,
			ImagePublicID:     imageID,
			OpenImage:         openImage,
			OpenImagePublicID: openImageID,
			Material:          c.PostForm("material"),
			Color:             c.PostForm("color"),
			GrayscaleImage:    c.PostForm("grayscale_image") == "true",
		}
		if err := db.WithContext(c.Request.Context()).Create(&bracelet).Error; err != nil {
			logger.Error("create bracelet failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bracelet"})
			return
		}
		c.JSON(http.StatusCreated, bracelet)
	}
}

// POST /admin/charms. categories is a comma separated list of names; unknown
// names are created.
func CreateCharm(db *gorm.DB, assets *catalog.AssetHost, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}
		price, err := parsePrice(priceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}

		image, imageID, err := formImage(c, assets, "image", "charms")
		if err != nil {
			logger.Error("charm image upload failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
			return
		}
		if image == "" && imageID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		background, backgroundID, err := formImage(c, assets, "background", "charms/backgrounds")
		if err != nil {
			logger.Error("charm background upload failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to save background: %v", err)})
			return
		}

		charm := models.Charm{
			Name:               name,
			Description:        c.PostForm("description"),
			Price:              price,
			Image:              image,
			ImagePublicID:      imageID,
			ModelURL:           strings.TrimSpace(c.PostForm("model_url")),
			Background:         background,
			BackgroundPublicID: backgroundID,
		}

		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			for _, raw := range strings.Split(c.PostForm("categories"), ",") {
				catName := strings.ToLower(strings.TrimSpace(raw))
				if catName == "" {
					continue
				}
				var cat models.CharmCategory
				if err := tx.Where(models.CharmCategory{Name: catName}).FirstOrCreate(&cat).Error; err != nil {
					return err
				}
				charm.Categories = append(charm.Categories, cat)
			}
			return tx.Create(&charm).Error
		})
		if err != nil {
			logger.Error("create charm failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create charm"})
			return
		}
		c.JSON(http.StatusCreated, charm)
	}
}

// DELETE /admin/charms/:id. Stored designs and orders keep the id; they drop
// the charm when rendered.
func DeleteCharm(db *gorm.DB, assets *catalog.AssetHost, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Charm ID is required"})
			return
		}

		var charm models.Charm
		if err := db.Preload("Categories").First(&charm, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Charm not found"})
			return
		}

		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&charm).Association("Categories").Clear(); err != nil {
				return err
			}
			return tx.Delete(&charm).Error
		})
		if err != nil {
			logger.Error("delete charm failed", zap.Uint64("charm_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete charm"})
			return
		}

		for _, publicID := range []string{charm.ImagePublicID, charm.BackgroundPublicID} {
			if err := assets.Destroy(c.Request.Context(), publicID); err != nil {
				logger.Warn("cloudinary destroy failed", zap.String("public_id", publicID), zap.Error(err))
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Charm deleted successfully"})
	}
}
