package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
)

// MemoryUserRepository keeps users in a map keyed by normalized email
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewMemoryUserRepository returns a store seeded with the given users
func NewMemoryUserRepository(seed ...*models.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]*models.User)}
	for _, u := range seed {
		r.users[utils.NormalizeEmail(u.Email)] = u
	}
	return r
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[utils.NormalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	key := utils.NormalizeEmail(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[key]; exists {
		return ErrDuplicate
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.users[key] = &cp
	return nil
}

func (r *MemoryUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.Password = passwordHash
			return nil
		}
	}
	return ErrNotFound
}

// MemoryOrderRepository keeps orders and payments in maps
type MemoryOrderRepository struct {
	mu       sync.RWMutex
	orders   map[string]*models.Order
	payments map[string]*models.Payment
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders:   make(map[string]*models.Order),
		payments: make(map[string]*models.Payment),
	}
}

func (r *MemoryOrderRepository) SaveOrder(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	cp := *order
	r.orders[order.OrderID] = &cp
	return nil
}

func (r *MemoryOrderRepository) FindOrder(ctx context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *MemoryOrderRepository) UpdateOrderStatus(ctx context.Context, orderID, status, paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	if paymentID != "" {
		o.PaymentID = paymentID
	}
	o.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryOrderRepository) SavePayment(ctx context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.payments[payment.PaymentID]; ok {
		payment.CreatedAt = existing.CreatedAt
	} else if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	payment.UpdatedAt = now
	cp := *payment
	r.payments[payment.PaymentID] = &cp
	return nil
}

func (r *MemoryOrderRepository) ListPayments(ctx context.Context) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MemoryWebhookEventRepository is a processed-id set with expiry
type MemoryWebhookEventRepository struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryWebhookEventRepository(ttl time.Duration) *MemoryWebhookEventRepository {
	if ttl <= 0 {
		ttl = DefaultWebhookTTL
	}
	return &MemoryWebhookEventRepository{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (r *MemoryWebhookEventRepository) MarkProcessed(ctx context.Context, eventID, event string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, at := range r.seen {
		if now.Sub(at) > r.ttl {
			delete(r.seen, id)
		}
	}
	if _, ok := r.seen[eventID]; ok {
		return false, nil
	}
	r.seen[eventID] = now
	return true, nil
}

func (r *MemoryWebhookEventRepository) Forget(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seen, eventID)
	return nil
}
