package dialog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Spok95/whiplash-bot/internal/store"
)

// Repo keeps per-chat dialog state in the key-value store so an
// in-flight dialog survives a restart.
type Repo struct {
	kv store.KV
}

func NewRepo(kv store.KV) *Repo { return &Repo{kv: kv} }

func key(chatID int64) string { return fmt.Sprintf("dialogState:%d", chatID) }

type stored struct {
	State   State   `json:"state"`
	Payload Payload `json:"payload"`
}

func (r *Repo) Get(ctx context.Context, chatID int64) (*Item, error) {
	raw, ok, err := r.kv.Get(ctx, key(chatID))
	if err != nil || !ok {
		// нет состояния — считаем idle
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	var s stored
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	if s.Payload == nil {
		s.Payload = Payload{}
	}
	return &Item{ChatID: chatID, State: s.State, Payload: s.Payload}, nil
}

func (r *Repo) Set(ctx context.Context, chatID int64, state State, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}
	raw, _ := json.Marshal(stored{State: state, Payload: payload})
	return r.kv.Set(ctx, key(chatID), string(raw))
}

func (r *Repo) Reset(ctx context.Context, chatID int64) error {
	return r.kv.Delete(ctx, key(chatID))
}

// GetString — helper для безопасного чтения строк из payload
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt читает число из payload (после JSON оно приходит как float64).
func GetInt(p Payload, key string) (int, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// GetInt64 — то же для идентификаторов.
func GetInt64(p Payload, key string) (int64, bool) {
	n, ok := GetInt(p, key)
	return int64(n), ok
}
