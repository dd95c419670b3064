package generate

import (
	"fanhao/internal/domain/content"
	"fmt"
	"strings"
)

// VideoFacts 是生成提示词需要的影片信息，已按目标语言准备好。
type VideoFacts struct {
	Code        string
	Title       string
	Actress     string
	Keywords    []string
	Description string
}

func PhrasePrompt(phrase string) string {
	return "Translate the following word or short phrase strictly into English. " +
		"Output ONLY the translated word/phrase. Do not include the original text, any introductory text, or quotation marks. " +
		"Just the English translation.\n\nPhrase: '" + phrase + "'"
}

func TitlePrompt(lang content.Language, title string) string {
	if lang == content.LangEN {
		return "Translate the following Japanese video title strictly into English. " +
			"Output ONLY the translated title. Do not include the original title, any introductory text, or quotation marks. " +
			"Just the English translation.\nTitle: '" + title + "'"
	}
	return "請將以下影片標題 '" + title + "' 用稍微不同的方式表達，保持意思和長度相似，作為網頁標題使用。只輸出標題本身。"
}

func SummaryPrompt(lang content.Language, f VideoFacts) string {
	if lang == content.LangEN {
		return fmt.Sprintf("Write a short SEO meta description (around 50-70 characters) for the following video, "+
			"highlighting its features and appeal. Include the code '%s' and actress '%s'. "+
			"Video Title: '%s', Genres: %s. Output only the description text.",
			f.Code, f.Actress, f.Title, strings.Join(f.Keywords, ", "))
	}
	return fmt.Sprintf("請為以下影片撰寫一段簡短的 SEO meta description (約 50-70 字)，重點強調影片特色和吸引力，"+
		"包含番號 '%s' 和女優 '%s'。影片標題：'%s'，類型：%s。請直接輸出描述文字，不要包含字數統計或其他額外說明。",
		f.Code, f.Actress, f.Title, strings.Join(f.Keywords, "、"))
}

func ReviewPrompt(lang content.Language, f VideoFacts) string {
	if lang == content.LangEN {
		return fmt.Sprintf(`You are a college student who keeps a casual late-night viewing diary.
Write a short diary-style note about the video with code %s.
Keep the tone playful and conversational, and split it into three parts:
why you clicked it, the moment you remember most, and how you felt afterwards.
Stay under 400 words, use natural paragraphs, avoid AI-sounding vocabulary.
Video Title: '%s', Actress: '%s', Genres: %s. Original Description: '%s'`,
			f.Code, f.Title, f.Actress, strings.Join(f.Keywords, ", "), f.Description)
	}
	return fmt.Sprintf(`你是一位 20 出頭的女大學生，會把看過的影片寫成深夜小日記。
請幫我撰寫一篇番號為「%s」的心得筆記，語氣口語、生動，像寫給閨蜜看的。
請依以下段落撰寫：觀影動機開場、最印象深刻的一幕、結尾總結與私密感想。
控制在 400 字以內，段落分明，句式要有變化，避免重複的 AI 用詞。
影片標題：'%s'，女優：'%s'，類型：%s。原始簡介：'%s'`,
		f.Code, f.Title, f.Actress, strings.Join(f.Keywords, "、"), f.Description)
}
