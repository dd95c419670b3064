package build

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

// copyStaticAssets 把主题的 static 目录复制到输出目录，并补上 favicon.ico。
func copyStaticAssets(src, dst string) error {
	// 如果没有 static 目录就算了
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		out := filepath.Join(dst, rel)

		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return err
		}

		in, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(out, in, 0o644)
	})
	if err != nil {
		return err
	}
	return ensureFavicon(dst)
}

// ensureFavicon 在没有 favicon.ico 时用 favicon.png 生成一个（ICO 容器内嵌 PNG）。
func ensureFavicon(dir string) error {
	ico := filepath.Join(dir, "favicon.ico")
	if _, err := os.Stat(ico); err == nil {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(dir, "favicon.png"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	out, err := pngToICO(data)
	if err != nil {
		return err
	}
	return os.WriteFile(ico, out, 0o644)
}

func pngToICO(data []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	dim := func(n int) uint8 {
		if n >= 256 {
			return 0
		}
		return uint8(n)
	}

	var buf bytes.Buffer
	// ICONDIR
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.WriteByte(dim(cfg.Width))
	buf.WriteByte(dim(cfg.Height))
	buf.WriteByte(0)
	buf.WriteByte(0)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(data)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(6+16))
	buf.Write(data)
	return buf.Bytes(), nil
}
