package service

import (
	"context"
	"sync"
	"time"

	"feedbackhub/internal/cache"
	"feedbackhub/internal/gateway"
	"feedbackhub/internal/model"
)

// CachedBoard is the admin page a session last loaded, with the filter that
// produced it so it can be refetched.
type CachedBoard struct {
	Filter        gateway.AdminFilter `json:"filter"`
	Items         []model.Feedback    `json:"items"`
	TotalElements int64               `json:"totalElements"`
	TotalPages    int                 `json:"totalPages"`
	Number        int                 `json:"number"`
	Size          int                 `json:"size"`
}

// BoardStore keeps one CachedBoard per session.
type BoardStore interface {
	Get(ctx context.Context, sessionID string) (*CachedBoard, bool)
	Set(ctx context.Context, sessionID string, board CachedBoard)
	Invalidate(ctx context.Context, sessionID string)
}

// BoardCache is the redis BoardStore. Failures read as a miss.
type BoardCache struct {
	cache *cache.Client
	ttl   time.Duration
}

// NewBoardCache creates a board cache with entries expiring after ttl.
func NewBoardCache(c *cache.Client, ttl time.Duration) *BoardCache {
	return &BoardCache{cache: c, ttl: ttl}
}

func boardKey(sessionID string) string {
	return "board:" + sessionID
}

func (b *BoardCache) Get(ctx context.Context, sessionID string) (*CachedBoard, bool) {
	var board CachedBoard
	if !b.cache.GetJSON(ctx, boardKey(sessionID), &board) {
		return nil, false
	}
	return &board, true
}

func (b *BoardCache) Set(ctx context.Context, sessionID string, board CachedBoard) {
	_ = b.cache.SetJSON(ctx, boardKey(sessionID), board, b.ttl)
}

func (b *BoardCache) Invalidate(ctx context.Context, sessionID string) {
	_ = b.cache.Delete(ctx, boardKey(sessionID))
}

// MemoryBoards keeps boards in process memory. Used when redis is not configured.
type MemoryBoards struct {
	mu     sync.Mutex
	boards map[string]CachedBoard
}

// NewMemoryBoards creates an empty in-memory BoardStore.
func NewMemoryBoards() *MemoryBoards {
	return &MemoryBoards{boards: map[string]CachedBoard{}}
}

func (m *MemoryBoards) Get(_ context.Context, sessionID string) (*CachedBoard, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	board, ok := m.boards[sessionID]
	if !ok {
		return nil, false
	}
	board.Items = append([]model.Feedback(nil), board.Items...)
	return &board, true
}

func (m *MemoryBoards) Set(_ context.Context, sessionID string, board CachedBoard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	board.Items = append([]model.Feedback(nil), board.Items...)
	m.boards[sessionID] = board
}

func (m *MemoryBoards) Invalidate(_ context.Context, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.boards, sessionID)
}
