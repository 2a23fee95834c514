// Package checkout turns cart lines into persisted orders and plans how
// stored orders are drawn back.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/charm-studio-api/auth"
	"github.com/junaidrashid-git/charm-studio-api/design"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

var (
	ErrNotAuthenticated = errors.New("sign in to place an order")
	ErrEmptyOrder       = errors.New("cart is empty")
	ErrPersistence      = errors.New("order could not be saved")
)

// Notifier receives every order that was persisted.
type Notifier interface {
	Publish(order models.Order)
}

type Service struct {
	store    OrderStore
	notifier Notifier
	metrics  *Metrics
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithMetrics(m *Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithLogger(l *zap.Logger) Option { return func(s *Service) { s.logger = l } }

// WithClock overrides time.Now for order refs and timestamps.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(store OrderStore, opts ...Option) *Service {
	s := &Service{store: store, logger: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SubmitOrder persists a pending order for actor and returns its reference.
// There is no retry and no idempotency key: submitting twice creates two
// orders. The total is stored as given.
func (s *Service) SubmitOrder(ctx context.Context, actor *auth.Actor, lines []design.CartLineItem, total float64) (string, error) {
	if !actor.Authenticated() {
		s.metrics.failed("unauthenticated")
		return "", ErrNotAuthenticated
	}
	if len(lines) == 0 {
		s.metrics.failed("empty")
		return "", ErrEmptyOrder
	}

	snapshot := SnapshotForOrder(lines)
	now := s.now()
	order := models.Order{
		OrderRef:     generateOrderRef(now),
		UserID:       actor.ID,
		Lines:        snapshot,
		TotalAmount:  total,
		Status:       models.OrderStatusPending,
		PreviewImage: orderPreview(snapshot),
		CreatedAt:    now,
	}
	if err := s.store.InsertOrder(ctx, &order); err != nil {
		s.metrics.failed("persistence")
		s.logger.Error("insert order failed",
			zap.String("user_id", actor.ID),
			zap.String("order_ref", order.OrderRef),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.metrics.placed(&order)
	s.logger.Info("order placed",
		zap.String("user_id", actor.ID),
		zap.String("order_ref", order.OrderRef),
		zap.Int("lines", len(order.Lines)),
		zap.Float64("total", total))
	if s.notifier != nil {
		s.notifier.Publish(order)
	}
	return order.OrderRef, nil
}

// generateOrderRef looks like 20250908130500-<uuid4>.
func generateOrderRef(now time.Time) string {
	return now.Format("20060102150405") + "-" + uuid.NewString()
}
