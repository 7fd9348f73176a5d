package static

import (
	"strings"

	"github.com/park285/action-reaction-hints/internal/common/textutil"
	"github.com/park285/action-reaction-hints/internal/hints/content"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// 패턴 토큰
const (
	BlankToken       = "_"
	SpaceToken       = "/"
	PlaceholderToken = "?"
)

// revealAllAbove: 이 길이(grapheme 수)를 넘으면 내부의 짝수 인덱스 글자도 드러낸다.
const revealAllAbove = 4

// RevealFunc: 패턴에 드러나는 글자의 표기를 바꾼다. (예: 대문자화)
type RevealFunc func(lang model.Language, grapheme string) string

// Ladder: 문구 테이블과 공개 글자 표기 규칙으로 4단계 힌트를 조립한다.
// 정적 생성기와 원격 클라이언트 폴백이 같은 구조 규칙을 공유한다.
type Ladder struct {
	Books  func(lang model.Language) content.Book
	Reveal RevealFunc
}

// Build: 단어/토픽/언어로 힌트 사다리를 만든다. 어떤 입력에도 빈 힌트를 만들지 않는다.
// 단어는 앞뒤 공백을 제거하고 NFC 로 정규화한 뒤 다루므로, 패턴의 첫/끝 글자는
// 원문이 아니라 정규화된 단어의 첫/끝 grapheme 과 같다.
func (l Ladder) Build(word, topic string, lang model.Language) model.HintSet {
	word = strings.TrimSpace(word)
	book := l.Books(lang)
	graphemes := textutil.Graphemes(word)

	description, ok := book.WordDescription(word)
	if !ok {
		description = book.GenericDescription(topic)
	}

	first := PlaceholderToken
	if len(graphemes) > 0 {
		first = graphemes[0]
	}

	hints := model.HintSet{
		book.TopicSentence(topic),
		book.LengthClue(Blanks(graphemes), textutil.GraphemeCount(word)),
		book.FirstLetterClue(first, description),
		l.pattern(graphemes, lang),
	}

	// 문구 테이블이 비정상이어도 글자 패턴만으로 플레이 가능한 힌트를 보장한다.
	for i := range hints {
		if strings.TrimSpace(hints[i]) == "" {
			hints[i] = hints[model.HintCount-1]
		}
	}
	return hints
}

func (l Ladder) pattern(graphemes []string, lang model.Language) string {
	n := len(graphemes)
	if n == 0 {
		return PlaceholderToken
	}

	tokens := make([]string, n)
	for i, g := range graphemes {
		switch {
		case textutil.IsBlank(g):
			tokens[i] = SpaceToken
		case i == 0 || i == n-1 || (n > revealAllAbove && i%2 == 0):
			tokens[i] = l.reveal(lang, g)
		default:
			tokens[i] = BlankToken
		}
	}
	return strings.Join(tokens, " ")
}

func (l Ladder) reveal(lang model.Language, g string) string {
	if l.Reveal == nil {
		return g
	}
	return l.Reveal(lang, g)
}

// Blanks: grapheme 마다 빈칸 하나를 둔 패턴. 공백은 "/" 로 표시한다.
func Blanks(graphemes []string) string {
	if len(graphemes) == 0 {
		return PlaceholderToken
	}
	tokens := make([]string, len(graphemes))
	for i, g := range graphemes {
		if textutil.IsBlank(g) {
			tokens[i] = SpaceToken
			continue
		}
		tokens[i] = BlankToken
	}
	return strings.Join(tokens, " ")
}
