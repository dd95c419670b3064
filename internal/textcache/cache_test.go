package textcache

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache", "text.db")
	st, err := Open(OpenOptions{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestPutGet(t *testing.T) {
	st, _ := openTemp(t)

	_, err := st.Get("title", "en", "translate ABC")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Put("title", "en", "translate ABC", "  After School  "))
	got, err := st.Get("title", "en", "translate ABC")
	require.NoError(t, err)
	require.Equal(t, "After School", got)

	// 语言不同是不同的条目
	_, err = st.Get("title", "cn", "translate ABC")
	require.ErrorIs(t, err, ErrNotFound)

	// 空值不写入
	require.NoError(t, st.Put("phrase", "en", "x", "   "))
	_, err = st.Get("phrase", "en", "x")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPersistsAcrossOpen(t *testing.T) {
	st, path := openTemp(t)
	require.NoError(t, st.Put("review", "cn", "p", "<p>好看</p>"))
	require.NoError(t, st.Close())

	st2, err := Open(OpenOptions{Path: path})
	require.NoError(t, err)
	defer st2.Close()
	got, err := st2.Get("review", "cn", "p")
	require.NoError(t, err)
	require.Equal(t, "<p>好看</p>", got)
}

func TestPurgeAndStats(t *testing.T) {
	st, _ := openTemp(t)
	require.NoError(t, st.Put("title", "en", "a", "A"))
	require.NoError(t, st.Put("title", "cn", "a", "甲"))
	require.NoError(t, st.Put("phrase", "en", "b", "B"))
	_, err := st.Get("title", "en", "a")
	require.NoError(t, err)

	stats, err := st.Stats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.Entries["title"])
	require.Equal(t, 1, stats.Entries["phrase"])
	require.Equal(t, uint64(1), stats.Hits["title"])

	n, err := st.Purge("title")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	_, err = st.Get("title", "en", "a")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get("phrase", "en", "b")
	require.NoError(t, err)

	n, err = st.Purge("")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	stats, err = st.Stats()
	require.NoError(t, err)
	require.Empty(t, stats.Entries)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(OpenOptions{})
	require.Error(t, err)
}

func TestKeyEncoding(t *testing.T) {
	k := makeKey("title", "en", "prompt")
	require.Equal(t, "title", kindFromKey(k))
	require.Equal(t, uint64(42), getU64(putU64(42)))
	require.Zero(t, getU64([]byte{1}))
}

func TestHitsFlushedOnClose(t *testing.T) {
	st, path := openTemp(t)
	require.NoError(t, st.Put("phrase", "en", "巨乳", "Big Tits"))
	for i := 0; i < 3; i++ {
		_, err := st.Get("phrase", "en", "巨乳")
		require.NoError(t, err)
	}

	// 命中只在内存里，还没写进 stats bucket
	var persisted uint64
	require.NoError(t, st.db.View(func(tx *bolt.Tx) error {
		persisted = getU64(tx.Bucket(bStats).Get([]byte("phrase")))
		return nil
	}))
	require.Zero(t, persisted)

	stats, err := st.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(3), stats.Hits["phrase"])
	require.NoError(t, st.Close())

	st2, err := Open(OpenOptions{Path: path})
	require.NoError(t, err)
	defer st2.Close()
	stats, err = st2.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(3), stats.Hits["phrase"])
}

func TestConcurrentGets(t *testing.T) {
	st, _ := openTemp(t)
	require.NoError(t, st.Put("title", "en", "p", "T"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				v, err := st.Get("title", "en", "p")
				if err != nil || v != "T" {
					t.Errorf("get: %q %v", v, err)
					return
				}
			}
		}()
	}
	wg.Wait()
	require.NoError(t, st.Flush())
	stats, err := st.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(400), stats.Hits["title"])
}
