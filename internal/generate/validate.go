package generate

import (
	"fanhao/internal/domain/content"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	errorMarker = regexp.MustCompile(`(?i)[(（][^)）]*(error|fail|失敗|失败)[^)）]*[)）]`)
	charsNote   = regexp.MustCompile(`\s*[(（]\s*\d+\s*(chars?|characters|字)\s*[)）]\s*$`)
	sentenceEnd = regexp.MustCompile(`[^.。!！?？]+[.。!！?？]*`)
)

const quoteChars = " \t\"'“”‘’「」『』"

// validate 检查并清洗服务返回的文本，返回 false 表示应当重试。
func validate(kind Kind, input, text string) (string, bool) {
	text = strings.TrimSpace(text)
	switch kind {
	case KindTitle:
		if i := strings.IndexAny(text, "\r\n"); i >= 0 {
			text = text[:i]
		}
		text = strings.Trim(text, quoteChars)
		if text == "" || errorMarker.MatchString(text) || strings.Contains(strings.ToLower(text), "failed") {
			return "", false
		}
	case KindPhrase:
		if i := strings.IndexAny(text, "\r\n"); i >= 0 {
			text = text[:i]
		}
		text = strings.Trim(text, quoteChars)
		if text == "" || strings.EqualFold(text, strings.TrimSpace(input)) {
			return "", false
		}
		if utf8.RuneCountInString(text) >= utf8.RuneCountInString(input)*5+10 {
			return "", false
		}
	case KindSummary:
		text = strings.TrimSpace(charsNote.ReplaceAllString(text, ""))
		if text == "" || errorMarker.MatchString(text) {
			return "", false
		}
	case KindReview:
		if text == "" || errorMarker.MatchString(text) {
			return "", false
		}
	default:
		return "", false
	}
	return text, true
}

// fallbackFor 是服务不可用或重试耗尽时的确定性文本，永远非空。
func fallbackFor(req Request) string {
	input := strings.TrimSpace(req.Input)
	switch req.Kind {
	case KindTitle, KindPhrase:
		if input != "" {
			return input
		}
		return "N/A"
	case KindReview:
		return reviewFallback.Project(req.Lang)
	case KindSummary:
		if input != "" {
			return content.Summary(input, 80)
		}
		return content.NoDescription.Project(req.Lang)
	}
	return "N/A"
}

var (
	reviewFallback = content.L(
		"<p>暫時還沒有觀影心得，很快就會更新哦！</p>",
		"<p>Review coming soon, stay tuned!</p>",
	)
	PlotFallback = content.L(
		"<p>劇情簡介即將推出，敬請期待！</p>",
		"<p>Plot summary will be available soon!</p>",
	)
)

// Paragraphs 按句子切分文本，每两句组成一个段落，段落之间空一行。
func Paragraphs(text string) string {
	var (
		paras []string
		cur   strings.Builder
		n     int
	)
	for _, line := range strings.Split(text, "\n") {
		for _, s := range sentenceEnd.FindAllString(line, -1) {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			if cur.Len() > 0 && !isCJK(s) {
				cur.WriteByte(' ')
			}
			cur.WriteString(s)
			n++
			if n == 2 {
				paras = append(paras, cur.String())
				cur.Reset()
				n = 0
			}
		}
	}
	if cur.Len() > 0 {
		paras = append(paras, cur.String())
	}
	return strings.Join(paras, "\n\n")
}

func isCJK(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r >= 0x2E80
}
