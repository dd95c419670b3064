package build

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}
}

func TestHashTreeStable(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	files := map[string]string{
		"index.html":          "<html>cn</html>",
		"videos/abc_cn.html":  "detail",
		"static/style.css":    "body{}",
		"genres/1_en_p2.html": "list",
	}
	writeTree(t, a, files)
	writeTree(t, b, files)

	ha, na, err := HashTree(a)
	require.NoError(t, err)
	hb, nb, err := HashTree(b)
	require.NoError(t, err)
	require.Equal(t, ha, hb)
	require.Equal(t, 4, na)
	require.Equal(t, na, nb)

	require.NoError(t, os.WriteFile(filepath.Join(b, "index.html"), []byte("<html>en</html>"), 0o644))
	hb2, _, err := HashTree(b)
	require.NoError(t, err)
	require.NotEqual(t, ha, hb2)
}

func TestHashTreeMissingRoot(t *testing.T) {
	h, n, err := HashTree(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, h)
	require.Zero(t, n)
}

func TestComputeRenderHash(t *testing.T) {
	f1 := Fingerprint{ThemeHash: "t", ConfigHash: "c", OutputHash: "o"}
	f2 := f1
	f1.ComputeRenderHash()
	f2.ComputeRenderHash()
	require.Equal(t, f1.RenderHash, f2.RenderHash)

	f2.OutputHash = "x"
	f2.ComputeRenderHash()
	require.NotEqual(t, f1.RenderHash, f2.RenderHash)
	require.Equal(t, HashBytes([]byte("a")), HashBytes([]byte("a")))
}
