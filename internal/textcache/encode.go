package textcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
)

// key = kind + 0x00 + lang + 0x00 + sha256(prompt)
// 同一 kind 的条目在 bucket 中相邻，可以按前缀清理。
func makeKey(kind, lang, prompt string) []byte {
	sum := sha256.Sum256([]byte(prompt))
	buf := make([]byte, 0, len(kind)+len(lang)+2+len(sum))
	buf = append(buf, kind...)
	buf = append(buf, 0x00)
	buf = append(buf, lang...)
	buf = append(buf, 0x00)
	buf = append(buf, sum[:]...)
	return buf
}

func kindPrefix(kind string) []byte {
	return append([]byte(kind), 0x00)
}

func kindFromKey(k []byte) string {
	i := bytes.IndexByte(k, 0x00)
	if i < 0 {
		return ""
	}
	return string(k[:i])
}

func putU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func getU64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
