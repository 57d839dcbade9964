package repo

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryUser struct {
	id    int
	email string
	hash  string
}

// MemoryRepository keeps users and analyses in process memory. It is used
// when no database is configured; contents are lost on restart.
type MemoryRepository struct {
	mu       sync.RWMutex
	users    map[string]memoryUser
	analyses []Analysis
	now      func() time.Time
}

func NewMemory() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]memoryUser), now: time.Now}
}

func (r *MemoryRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[login]; exists {
		return 0, ErrUserExists
	}
	id := len(r.users) + 1
	r.users[login] = memoryUser{id: id, email: email, hash: passwordHash}
	return id, nil
}

func (r *MemoryRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[login]
	if !ok {
		return 0, "", ErrNotFound
	}
	return u.id, u.hash, nil
}

func (r *MemoryRepository) SaveAnalysis(ctx context.Context, a Analysis) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = len(r.analyses) + 1
	a.CreatedAt = r.now()
	r.analyses = append(r.analyses, a)
	return a.ID, nil
}

func (r *MemoryRepository) ListAnalyses(ctx context.Context, userID, limit int) ([]Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Analysis
	for _, a := range r.analyses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) GetAnalysis(ctx context.Context, userID, id int) (Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.analyses {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return Analysis{}, ErrNotFound
}
