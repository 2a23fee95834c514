package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/charm-studio-api/auth"
	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/design"
)

const cookieMaxAge = 30 * 24 * 60 * 60

// Catalog is the part of catalog.Provider a Workspace needs.
type Catalog interface {
	Snapshot(ctx context.Context) *catalog.Snapshot
}

// Workspace rebuilds a design.Store for one request from the selection
// cookie and the owner's stored cart, and writes both back afterwards.
type Workspace struct {
	db      *gorm.DB
	catalog Catalog
	logger  *zap.Logger
	secure  bool
}

func NewWorkspace(db *gorm.DB, c Catalog, logger *zap.Logger, secureCookies bool) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{db: db, catalog: c, logger: logger, secure: secureCookies}
}

// Open is the request-scoped view of one owner's composition.
type Open struct {
	Store   *design.Store
	Lookup  *catalog.Snapshot
	OwnerID string
	before  design.State
}

// Load restores the composition of ownerID. An unreadable cookie is logged
// and treated as an empty selection.
func (w *Workspace) Load(c *gin.Context, ownerID string) (*Open, error) {
	lookup := w.catalog.Snapshot(c.Request.Context())

	value, _ := c.Cookie(CookieName)
	st, err := Decode(value, lookup)
	if err != nil {
		w.logger.Warn("discarding unreadable selection cookie", zap.String("owner", ownerID), zap.Error(err))
		st = design.State{Charms: []design.CharmInstance{}}
	}

	cart, err := LoadCart(w.db.WithContext(c.Request.Context()), ownerID, lookup)
	if err != nil {
		return nil, err
	}
	st.Cart = cart

	return &Open{
		Store:   design.NewStore(st),
		Lookup:  lookup,
		OwnerID: ownerID,
		before:  st,
	}, nil
}

// Save writes the selection cookie and, when its line ids changed, the cart.
// A selection too large for the cookie keeps the previous cookie.
func (w *Workspace) Save(c *gin.Context, o *Open) error {
	st := o.Store.State()

	value, err := Encode(st)
	switch {
	case errors.Is(err, ErrTooLarge):
		w.logger.Warn("selection exceeds cookie limit, keeping previous cookie", zap.String("owner", o.OwnerID))
	case err != nil:
		return fmt.Errorf("encode selection: %w", err)
	default:
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(CookieName, value, cookieMaxAge, "/", "", w.secure, true)
	}

	if sameLines(o.before.Cart, st.Cart) {
		return nil
	}
	if err := SaveCart(w.db.WithContext(c.Request.Context()), o.OwnerID, st.Cart); err != nil {
		return err
	}
	o.before = st
	return nil
}

func sameLines(a, b []design.CartLineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// Begin loads the workspace of the request's actor. On failure it has
// already written the error response.
func (w *Workspace) Begin(c *gin.Context) (*Open, bool) {
	actor := auth.ActorFrom(c)
	if actor == nil || actor.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	o, err := w.Load(c, actor.ID)
	if err != nil {
		w.logger.Error("load workspace failed", zap.String("owner", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load design"})
		return nil, false
	}
	return o, true
}

// Commit saves o. On failure it has already written the error response.
func (w *Workspace) Commit(c *gin.Context, o *Open) bool {
	if err := w.Save(c, o); err != nil {
		w.logger.Error("save workspace failed", zap.String("owner", o.OwnerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save design"})
		return false
	}
	return true
}
