// Package catalog is the read side of the bracelet and charm reference data.
// Lookups never fail the caller: query errors are logged and produce empty
// results.
package catalog

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

// Lookup resolves stored ids back to reference data.
type Lookup interface {
	Bracelet(id uint) (models.Bracelet, bool)
	Charm(id uint) (models.Charm, bool)
}

type Provider struct {
	db     *gorm.DB
	assets *AssetHost
	snaps  *layout.SnapTable
	logger *zap.Logger
}

func NewProvider(db *gorm.DB, assets *AssetHost, snaps *layout.SnapTable, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{db: db, assets: assets, snaps: snaps, logger: logger}
}

func (p *Provider) ListBracelets(ctx context.Context) []models.Bracelet {
	var bracelets []models.Bracelet
	if err := p.db.WithContext(ctx).Order("id ASC").Find(&bracelets).Error; err != nil {
		p.logger.Warn("list bracelets failed", zap.Error(err))
		return []models.Bracelet{}
	}
	for i := range bracelets {
		bracelets[i].Image = p.assets.URL(bracelets[i].Image, bracelets[i].ImagePublicID)
		bracelets[i].OpenImage = p.assets.URL(bracelets[i].OpenImage, bracelets[i].OpenImagePublicID)
	}
	return bracelets
}

// ListCharms returns every charm, or only those tagged category when it is
// non-empty.
func (p *Provider) ListCharms(ctx context.Context, category string) []models.Charm {
	var charms []models.Charm
	if err := p.db.WithContext(ctx).Preload("Categories").Order("id ASC").Find(&charms).Error; err != nil {
		p.logger.Warn("list charms failed", zap.Error(err))
		return []models.Charm{}
	}
	out := make([]models.Charm, 0, len(charms))
	for _, c := range charms {
		if category != "" && !c.HasCategory(category) {
			continue
		}
		c.Image = p.CharmImageURL(c)
		c.Background, _ = p.CharmBackgroundURL(c)
		out = append(out, c)
	}
	return out
}

func (p *Provider) ListCharmCategories(ctx context.Context) []string {
	var names []string
	if err := p.db.WithContext(ctx).Model(&models.CharmCategory{}).Pluck("name", &names).Error; err != nil {
		p.logger.Warn("list charm categories failed", zap.Error(err))
		return []string{}
	}
	sort.Strings(names)
	return names
}

func (p *Provider) CharmImageURL(c models.Charm) string {
	return p.assets.URL(c.Image, c.ImagePublicID)
}

// CharmBackgroundURL reports false when the charm has no decorative background.
func (p *Provider) CharmBackgroundURL(c models.Charm) (string, bool) {
	u := p.assets.URL(c.Background, c.BackgroundPublicID)
	return u, u != ""
}

// SnapPoints returns the bracelet's custom snap points or the default table.
func (p *Provider) SnapPoints(braceletID uint) []layout.Point {
	return p.snaps.Resolve(braceletID)
}

// HasCustomSnapPoints reports whether the bracelet has its own table.
func (p *Provider) HasCustomSnapPoints(braceletID uint) bool {
	return p.snaps.ForBracelet(braceletID) != nil
}

// Snapshot loads the full catalog into an in-memory Lookup.
func (p *Provider) Snapshot(ctx context.Context) *Snapshot {
	return NewSnapshot(p.ListBracelets(ctx), p.ListCharms(ctx, ""))
}

// Snapshot is a point-in-time id index of the catalog.
type Snapshot struct {
	bracelets map[uint]models.Bracelet
	charms    map[uint]models.Charm
}

func NewSnapshot(bracelets []models.Bracelet, charms []models.Charm) *Snapshot {
	s := &Snapshot{
		bracelets: make(map[uint]models.Bracelet, len(bracelets)),
		charms:    make(map[uint]models.Charm, len(charms)),
	}
	for _, b := range bracelets {
		s.bracelets[b.ID] = b
	}
	for _, c := range charms {
		s.charms[c.ID] = c
	}
	return s
}

func (s *Snapshot) Bracelet(id uint) (models.Bracelet, bool) {
	b, ok := s.bracelets[id]
	return b, ok
}

func (s *Snapshot) Charm(id uint) (models.Charm, bool) {
	c, ok := s.charms[id]
	if !ok {
		return models.Charm{}, false
	}
	return c.Clone(), true
}
