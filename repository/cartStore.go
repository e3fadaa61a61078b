package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Kariqs/decorshop/models"
)

// CartStore keeps one cart per session cart key. Update is the only way to
// change a cart: implementations run fn with exclusive access to the key, so
// concurrent requests from the same session never lose each other's writes.
// A cart left empty by fn is deleted.
type CartStore interface {
	Get(ctx context.Context, key string) (*models.Cart, error)
	Update(ctx context.Context, key string, fn func(cart *models.Cart) error) error
	Delete(ctx context.Context, key string) error
}

type memoryCart struct {
	cart      models.Cart
	expiresAt time.Time
}

// keyLock is held only while some Update on its key is running or waiting.
type keyLock struct {
	sync.Mutex
	refs int
}

type MemoryCartStore struct {
	ttl   time.Duration
	mu    sync.Mutex
	locks map[string]*keyLock
	carts map[string]memoryCart
}

func NewMemoryCartStore(ttl time.Duration) *MemoryCartStore {
	return &MemoryCartStore{
		ttl:   ttl,
		locks: make(map[string]*keyLock),
		carts: make(map[string]memoryCart),
	}
}

func (s *MemoryCartStore) acquire(key string) *keyLock {
	s.mu.Lock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &keyLock{}
		s.locks[key] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.Lock()
	return lock
}

func (s *MemoryCartStore) release(key string, lock *keyLock) {
	lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, key)
	}
}

func (s *MemoryCartStore) load(key string) (models.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[key]
	if !ok {
		return models.Cart{}, false
	}
	if s.ttl > 0 && time.Now().After(entry.expiresAt) {
		delete(s.carts, key)
		return models.Cart{}, false
	}
	entry.cart.Items = append([]models.CartItem{}, entry.cart.Items...)
	return entry.cart, true
}

func (s *MemoryCartStore) Get(_ context.Context, key string) (*models.Cart, error) {
	cart, ok := s.load(key)
	if !ok {
		return nil, ErrNotFound
	}
	return &cart, nil
}

func (s *MemoryCartStore) Update(_ context.Context, key string, fn func(cart *models.Cart) error) error {
	lock := s.acquire(key)
	defer s.release(key, lock)

	cart, _ := s.load(key)
	if err := fn(&cart); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cart.IsEmpty() {
		delete(s.carts, key)
		return nil
	}
	cart.UpdatedAt = time.Now().UTC()
	s.carts[key] = memoryCart{cart: cart, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryCartStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, key)
	return nil
}
