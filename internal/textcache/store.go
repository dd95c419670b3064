package textcache

import (
	"errors"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store 把成功生成的文本按 (kind, lang, prompt) 持久化，重复构建时不必再调用服务。
// 命中次数先记在内存里，Flush/Close 时一次写回。
type Store struct {
	db *bolt.DB

	mu   sync.Mutex
	hits map[string]uint64 // 尚未写回的命中
}

type OpenOptions struct {
	Path string // e.g. "./.fanhao/text.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("textcache: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, hits: map[string]uint64{}}, nil
}

// Flush 把内存中的命中次数写回 stats bucket。
func (s *Store) Flush() error {
	s.mu.Lock()
	pending := s.hits
	s.hits = map[string]uint64{}
	s.mu.Unlock()
	if len(pending) == 0 {
		return nil
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		st := tx.Bucket(bStats)
		for kind, n := range pending {
			if err := st.Put([]byte(kind), putU64(getU64(st.Get([]byte(kind)))+n)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// 写回失败时放回去，下次再试
		s.mu.Lock()
		for kind, n := range pending {
			s.hits[kind] += n
		}
		s.mu.Unlock()
	}
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	ferr := s.Flush()
	return errors.Join(ferr, s.db.Close())
}
