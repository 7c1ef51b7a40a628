package memory

import (
	"time"

	"github.com/andersonguestart098/IA-AGENT-LANGCHAIN/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently resolved sessions keyed by token so a busy
// conversation does not hit the database on every turn. Sessions are
// immutable after creation, so cached entries never go stale.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *entity.Session) {
	r.cache.Set(session.Token, session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(token string) (*entity.Session, bool) {
	if x, found := r.cache.Get(token); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionCache) Delete(token string) {
	r.cache.Delete(token)
}
