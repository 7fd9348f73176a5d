// Package static: 네트워크 없이 단어/토픽/언어만으로 결정적인 힌트를 만드는 생성기.
package static

import (
	"github.com/park285/action-reaction-hints/internal/hints/content"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// Generator: 정적 힌트 생성기. 순수 함수이며 실패하지 않는다.
type Generator struct {
	ladder Ladder
}

// NewGenerator: 문구 카탈로그의 static 섹션으로 생성기를 만든다.
func NewGenerator(catalog *content.Catalog) *Generator {
	return &Generator{
		ladder: Ladder{Books: catalog.Static},
	}
}

// Generate: 4단계 힌트를 생성한다.
func (g *Generator) Generate(word, topic string, lang model.Language) model.HintSet {
	return g.ladder.Build(word, topic, lang)
}
