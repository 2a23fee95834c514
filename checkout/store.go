package checkout

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/junaidrashid-git/charm-studio-api/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStore is the order persistence provider.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
}

// GormStore keeps orders in the relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// InsertOrder writes the order with its lines and items in one statement
// group. The order id and line ids are filled in on success.
func (s *GormStore) InsertOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

// ListOrders returns the orders of userID newest first, or every order when
// userID is empty.
func (s *GormStore) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	}).Preload("Lines.Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	orders := []models.Order{}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder loads one order by its reference.
func (s *GormStore) GetOrder(ctx context.Context, ref string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Preload("Lines.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("order_ref = ?", ref).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, ErrOrderNotFound
	}
	return order, err
}

// UpdateStatus moves an order to status under a row lock.
func (s *GormStore) UpdateStatus(ctx context.Context, ref string, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("order_ref = ?", ref).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if err := CanTransition(order.Status, status); err != nil {
			return err
		}
		order.Status = status
		return tx.Model(&order).Update("status", status).Error
	})
	return order, err
}
