package textutil

import (
	"math/rand/v2"
	"strings"
)

const scrambleMaxAttempts = 8

// ScrambleWord: grapheme 단위로 섞은 문자열을 반환합니다.
// 구성 문자(중복 포함)와 길이는 그대로 유지되며, 입력을 정규화하지 않습니다.
func ScrambleWord(word string) string {
	return ScrambleWordWith(word, nil)
}

// ScrambleWordWith: 지정한 난수 생성기로 섞습니다. r 이 nil 이면 전역 생성기를 사용합니다.
// 서로 다른 문자가 2개 이상이면 원문과 다른 결과가 나올 때까지 몇 차례 재시도합니다.
func ScrambleWordWith(word string, r *rand.Rand) string {
	gs := SplitGraphemes(word)
	if len(gs) < 2 || !hasDistinct(gs) {
		return word
	}

	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}

	original := strings.Join(gs, "")
	out := make([]string, len(gs))
	for attempt := 0; attempt < scrambleMaxAttempts; attempt++ {
		copy(out, gs)
		shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		if scrambled := strings.Join(out, ""); scrambled != original {
			return scrambled
		}
	}
	// 재시도에도 같으면 한 칸 회전
	return strings.Join(append(gs[1:len(gs):len(gs)], gs[0]), "")
}

func hasDistinct(gs []string) bool {
	for _, g := range gs[1:] {
		if g != gs[0] {
			return true
		}
	}
	return false
}
