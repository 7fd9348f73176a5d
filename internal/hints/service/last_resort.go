package service

import (
	"strconv"
	"strings"

	"github.com/park285/action-reaction-hints/internal/common/textutil"
	"github.com/park285/action-reaction-hints/internal/hints/model"
	"github.com/park285/action-reaction-hints/internal/hints/static"
)

// lastResortHints: 문구 테이블 없이 단어의 글자만으로 만든 힌트.
// 정적 생성기마저 실패했을 때 쓴다.
func lastResortHints(word string) model.HintSet {
	graphemes := textutil.Graphemes(strings.TrimSpace(word))
	if len(graphemes) == 0 {
		return model.HintSet{static.PlaceholderToken, static.PlaceholderToken, static.PlaceholderToken, static.PlaceholderToken}
	}

	blanks := static.Blanks(graphemes)
	pattern := make([]string, len(graphemes))
	for i, g := range graphemes {
		switch {
		case textutil.IsBlank(g):
			pattern[i] = static.SpaceToken
		case i == 0 || i == len(graphemes)-1:
			pattern[i] = g
		default:
			pattern[i] = static.BlankToken
		}
	}

	return model.HintSet{
		blanks,
		strconv.Itoa(textutil.GraphemeCount(word)),
		graphemes[0],
		strings.Join(pattern, " "),
	}
}
