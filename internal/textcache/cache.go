package textcache

import (
	"bytes"
	"encoding/json"
	"errors"
	bolt "go.etcd.io/bbolt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

type entry struct {
	Value   string    `json:"value"`
	Created time.Time `json:"created"`
}

func (s *Store) Get(kind, lang, prompt string) (string, error) {
	key := makeKey(kind, lang, prompt)
	var e entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bText)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(key)
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &e)
	})
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.hits[kind]++
	s.mu.Unlock()
	return e.Value, nil
}

func (s *Store) Put(kind, lang, prompt, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	data, err := json.Marshal(entry{Value: value, Created: time.Now().UTC()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bText).Put(makeKey(kind, lang, prompt), data)
	})
}

// Purge 删除某个 kind 的所有条目；kind 为空时清空缓存。返回删除的条数。
func (s *Store) Purge(kind string) (int, error) {
	s.mu.Lock()
	if kind == "" {
		s.hits = map[string]uint64{}
	} else {
		delete(s.hits, kind)
	}
	s.mu.Unlock()

	n := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		if kind == "" {
			if b := tx.Bucket(bText); b != nil {
				n = b.Stats().KeyN
			}
			for _, name := range allBuckets {
				_ = tx.DeleteBucket(name)
				if _, err := tx.CreateBucket(name); err != nil {
					return err
				}
			}
			return nil
		}

		b := tx.Bucket(bText)
		prefix := kindPrefix(kind)
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		n = len(keys)
		return tx.Bucket(bStats).Delete([]byte(kind))
	})
	return n, err
}

type Stats struct {
	Entries map[string]int
	Hits    map[string]uint64
}

func (s *Store) Stats() (Stats, error) {
	st := Stats{Entries: map[string]int{}, Hits: map[string]uint64{}}
	err := s.db.View(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bText).ForEach(func(k, _ []byte) error {
			st.Entries[kindFromKey(k)]++
			return nil
		}); err != nil {
			return err
		}
		return tx.Bucket(bStats).ForEach(func(k, v []byte) error {
			st.Hits[string(k)] = getU64(v)
			return nil
		})
	})
	s.mu.Lock()
	for kind, n := range s.hits {
		st.Hits[kind] += n
	}
	s.mu.Unlock()
	return st, err
}
