package build

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Fingerprint 汇总一次构建的输入和输出，两次构建的 RenderHash 相同说明产物一致。
type Fingerprint struct {
	ThemeHash  string
	ConfigHash string
	OutputHash string
	Files      int
	RenderHash string
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	h.Write([]byte(f.ThemeHash))
	h.Write([]byte(f.ConfigHash))
	h.Write([]byte(f.OutputHash))
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}

// HashTree 按相对路径排序后对目录下每个文件的路径和内容做 sha256。
// 目录不存在时返回空哈希。
func HashTree(root string) (string, int, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, nil
		}
		return "", 0, err
	}
	sort.Strings(files)

	h := sha256.New()
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", 0, err
		}
		sum := sha256.Sum256(data)
		h.Write([]byte(rel))
		h.Write([]byte{0})
		h.Write(sum[:])
	}
	return hex.EncodeToString(h.Sum(nil)), len(files), nil
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
