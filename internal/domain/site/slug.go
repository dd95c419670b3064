package site

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnknownSlug 是无法得到有效标识时使用的文件名。
const UnknownSlug = "unknown-id"

var (
	reUnsafe = regexp.MustCompile(`[^a-z0-9_.-]`)
	reDashes = regexp.MustCompile(`-{2,}`)
)

// Slugify 把任意标识转成只含 [a-z0-9_.-] 的文件名片段。
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = reUnsafe.ReplaceAllString(s, "-")
	s = reDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return UnknownSlug
	}
	return s
}

func SlugifyID(id int64) string {
	return Slugify(strconv.FormatInt(id, 10))
}

// SlugifyAny 接受数据库里可能为空的值，nil 直接返回 UnknownSlug。
func SlugifyAny(v any) string {
	switch x := v.(type) {
	case nil:
		return UnknownSlug
	case string:
		return Slugify(x)
	case *string:
		if x == nil {
			return UnknownSlug
		}
		return Slugify(*x)
	case int:
		return Slugify(strconv.Itoa(x))
	case int64:
		return SlugifyID(x)
	case fmt.Stringer:
		return Slugify(x.String())
	default:
		return Slugify(fmt.Sprint(x))
	}
}
