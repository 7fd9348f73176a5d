package service

import (
	"context"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// PrefetchHints: 한 라운드의 단어들을 동시에 조회한다. 중복/빈 단어는 한 번만(또는 생략) 처리한다.
// 결과 맵의 키는 공백을 제거한 단어다.
func (s *HintService) PrefetchHints(
	ctx context.Context,
	words []string,
	topic string,
	useAI bool,
	lang model.Language,
) map[string]model.HintSet {
	unique := lo.Uniq(lo.FilterMap(words, func(word string, _ int) (string, bool) {
		word = strings.TrimSpace(word)
		return word, word != ""
	}))

	results := make(map[string]model.HintSet, len(unique))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(s.cfg.PrefetchConcurrency)
	for _, word := range unique {
		g.Go(func() error {
			hints := s.GetHints(ctx, word, topic, useAI, lang)
			mu.Lock()
			results[word] = hints
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}
