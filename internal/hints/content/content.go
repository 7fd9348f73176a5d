// Package content: 정적 힌트와 원격 폴백 힌트에 쓰이는 언어별 문구 테이블.
//
// 테이블은 YAML 로 관리되며 토픽/단어 조회는 대소문자를 구분하는 정확 일치다.
// 토픽이 없으면 언어별 기본 문장, 단어 설명이 없으면 토픽 기반 일반 설명 템플릿을 쓴다.
package content

import (
	"fmt"
	"os"
	"strings"

	"github.com/park285/action-reaction-hints/internal/common/messageprovider"
	"github.com/park285/action-reaction-hints/internal/hints/assets"
	"github.com/park285/action-reaction-hints/internal/hints/model"
)

// 최상위 섹션 이름
const (
	SectionStatic   = "static"
	SectionFallback = "fallback"
)

// 템플릿 키
const (
	keyDefaultTopic       = "default_topic"
	keyTopics             = "topics"
	keyWords              = "words"
	keyTemplates          = "templates"
	keyLength             = "length"
	keyFirstLetter        = "first_letter"
	keyGenericDescription = "generic_description"
)

// Catalog: 섹션(static/fallback) x 언어별 Book 모음
type Catalog struct {
	books map[string]map[model.Language]Book
}

// LoadDefault: 내장된 기본 문구 YAML 로 Catalog 를 생성한다.
func LoadDefault() (*Catalog, error) {
	return Parse(assets.HintContentYAML)
}

// LoadFile: 파일 경로의 YAML 로 Catalog 를 생성한다. 경로가 비어 있으면 내장 YAML 을 쓴다.
func LoadFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadDefault()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hint content file failed path=%s: %w", path, err)
	}
	return Parse(string(raw))
}

// Parse: YAML 문서를 파싱하고 모든 섹션/언어에 필수 키가 있는지 검증한다.
func Parse(yamlContent string) (*Catalog, error) {
	root, err := messageprovider.NewFromYAML(yamlContent)
	if err != nil {
		return nil, fmt.Errorf("parse hint content failed: %w", err)
	}

	catalog := &Catalog{books: make(map[string]map[model.Language]Book, 2)}
	for _, section := range []string{SectionStatic, SectionFallback} {
		catalog.books[section] = make(map[model.Language]Book, 2)
		for _, lang := range []model.Language{model.LanguageEnglish, model.LanguageTamil} {
			provider, ok := root.Sub(section, lang.String())
			if !ok {
				return nil, fmt.Errorf("hint content missing section=%s language=%s", section, lang)
			}
			book := Book{language: lang, provider: provider}
			if err := book.validate(); err != nil {
				return nil, fmt.Errorf("hint content invalid section=%s language=%s: %w", section, lang, err)
			}
			catalog.books[section][lang] = book
		}
	}
	return catalog, nil
}

// Static: 정적 힌트 생성기용 Book
func (c *Catalog) Static(lang model.Language) Book {
	return c.book(SectionStatic, lang)
}

// Fallback: 원격 클라이언트 폴백용 Book
func (c *Catalog) Fallback(lang model.Language) Book {
	return c.book(SectionFallback, lang)
}

func (c *Catalog) book(section string, lang model.Language) Book {
	if !lang.IsValid() {
		lang = model.LanguageEnglish
	}
	return c.books[section][lang]
}

// Book: 한 언어의 문구 테이블
type Book struct {
	language model.Language
	provider *messageprovider.Provider
}

// Language: Book 의 언어
func (b Book) Language() model.Language { return b.language }

// TopicSentence: 토픽 설명 문장. 토픽이 테이블에 없으면 기본 문장을 반환한다.
func (b Book) TopicSentence(topic string) string {
	if sentence, ok := b.provider.Lookup(keyTopics, topic); ok && strings.TrimSpace(sentence) != "" {
		return sentence
	}
	sentence, _ := b.provider.Lookup(keyDefaultTopic)
	return sentence
}

// WordDescription: 단어별 맞춤 설명
func (b Book) WordDescription(word string) (string, bool) {
	description, ok := b.provider.Lookup(keyWords, word)
	if !ok || strings.TrimSpace(description) == "" {
		return "", false
	}
	return description, true
}

// GenericDescription: 단어 설명이 없을 때 쓰는 토픽 기반 설명
func (b Book) GenericDescription(topic string) string {
	return b.render(keyGenericDescription, messageprovider.P("topic", topic))
}

// LengthClue: 빈칸 패턴과 글자 수 힌트
func (b Book) LengthClue(blanks string, count int) string {
	return b.render(keyLength, messageprovider.P("blanks", blanks), messageprovider.P("count", count))
}

// FirstLetterClue: 첫 글자 + 설명 힌트
func (b Book) FirstLetterClue(first, description string) string {
	return b.render(keyFirstLetter, messageprovider.P("first", first), messageprovider.P("description", description))
}

// Topics: 테이블에 등록된 토픽 목록
func (b Book) Topics() []string {
	return b.provider.Keys(keyTopics)
}

func (b Book) render(key string, params ...messageprovider.Param) string {
	template, _ := b.provider.Lookup(keyTemplates, key)
	return messageprovider.Render(template, params...)
}

func (b Book) validate() error {
	if s, ok := b.provider.Lookup(keyDefaultTopic); !ok || strings.TrimSpace(s) == "" {
		return fmt.Errorf("missing %s", keyDefaultTopic)
	}
	for _, key := range []string{keyLength, keyFirstLetter, keyGenericDescription} {
		if s, ok := b.provider.Lookup(keyTemplates, key); !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("missing template %s", key)
		}
	}
	return nil
}
