package remote

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/park285/action-reaction-hints/internal/hints/content"
	"github.com/park285/action-reaction-hints/internal/hints/model"
	"github.com/park285/action-reaction-hints/internal/hints/static"
)

// Fallback: 원격 API 를 쓸 수 없을 때 클라이언트가 직접 만드는 힌트.
// 정적 생성기와 같은 구조 규칙을 쓰지만 별도의 문구 테이블을 쓰고, 패턴에 드러난 글자는 대문자로 표기한다.
type Fallback struct {
	ladder static.Ladder
}

// NewFallback: 문구 카탈로그의 fallback 섹션으로 폴백 생성기를 만든다.
func NewFallback(catalog *content.Catalog) *Fallback {
	return &Fallback{
		ladder: static.Ladder{
			Books:  catalog.Fallback,
			Reveal: upperReveal,
		},
	}
}

// Generate: 폴백 힌트를 생성한다.
func (f *Fallback) Generate(word, topic string, lang model.Language) model.HintSet {
	return f.ladder.Build(word, topic, lang)
}

// cases.Caser 는 상태를 가지므로 호출마다 만든다.
func upperReveal(lang model.Language, grapheme string) string {
	return cases.Upper(languageTag(lang)).String(grapheme)
}

func languageTag(lang model.Language) language.Tag {
	switch lang {
	case model.LanguageTamil:
		return language.Tamil
	default:
		return language.English
	}
}
