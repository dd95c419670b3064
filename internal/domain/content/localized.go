package content

import "fmt"

type Language string

const (
	LangCN Language = "cn"
	LangEN Language = "en"
)

// Languages 是一次构建固定产出的语言，顺序即生成顺序。
var Languages = []Language{LangCN, LangEN}

func (l Language) Other() Language {
	if l == LangEN {
		return LangCN
	}
	return LangEN
}

func (l Language) Valid() bool {
	return l == LangCN || l == LangEN
}

func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangCN, LangEN:
		return Language(s), nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// Localized 持有同一字段的两种语言版本，渲染时按页面语言投影。
type Localized[T any] struct {
	CN T
	EN T
}

func L[T any](cn, en T) Localized[T] {
	return Localized[T]{CN: cn, EN: en}
}

// Same 两种语言用同一个值。
func Same[T any](v T) Localized[T] {
	return Localized[T]{CN: v, EN: v}
}

func (l Localized[T]) Project(lang Language) T {
	if lang == LangEN {
		return l.EN
	}
	return l.CN
}

func (l Localized[T]) ProjectAny(lang Language) any {
	return l.Project(lang)
}

// Projector 让渲染层在不知道 T 的情况下完成投影。
type Projector interface {
	ProjectAny(lang Language) any
}

var (
	UnknownActress = L("未知女優", "Unknown Actress")
	Uncategorized  = L("未分類", "Uncategorized")
	NoDescription  = L("暫無簡介", "No description")
)
