// Package messageprovider: YAML 문서에서 문구와 템플릿을 조회하고 {param} 치환을 수행한다.
package messageprovider

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider: YAML 맵 트리를 감싼 읽기 전용 문구 저장소.
type Provider struct {
	root map[string]any
}

// NewFromYAML: YAML 문자열을 파싱해 Provider 를 생성한다. 빈 문서는 빈 Provider 가 된다.
func NewFromYAML(yamlContent string) (*Provider, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(yamlContent), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal yaml failed: %w", err)
	}

	if raw == nil {
		return &Provider{root: make(map[string]any)}, nil
	}

	root, ok := normalizeYAMLValue(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected yaml root type: %T", raw)
	}

	return &Provider{root: root}, nil
}

// Get: 점 구분 키로 문구를 조회하고 파라미터를 치환한다. 키가 없으면 키 자체를 반환한다.
func (p *Provider) Get(key string, params ...Param) string {
	if p == nil || strings.TrimSpace(key) == "" {
		return key
	}

	value, ok := resolvePath(p.root, strings.Split(key, "."))
	if !ok {
		return key
	}

	template, ok := value.(string)
	if !ok {
		return fmt.Sprint(value)
	}
	return Render(template, params...)
}

// Lookup: 경로 세그먼트로 문자열 값을 조회한다.
// 세그먼트 단위로 찾으므로 공백이나 점이 들어간 키(예: "ice cream")도 그대로 쓸 수 있다.
func (p *Provider) Lookup(path ...string) (string, bool) {
	if p == nil || len(path) == 0 {
		return "", false
	}
	value, ok := resolvePath(p.root, path)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Sub: 경로 아래 객체를 루트로 하는 하위 Provider 를 반환한다.
func (p *Provider) Sub(path ...string) (*Provider, bool) {
	if p == nil {
		return nil, false
	}
	value, ok := resolvePath(p.root, path)
	if !ok {
		return nil, false
	}
	sub, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return &Provider{root: sub}, true
}

// Keys: 경로 아래 객체의 키 목록 (정렬됨)
func (p *Provider) Keys(path ...string) []string {
	if p == nil {
		return nil
	}
	value, ok := resolvePath(p.root, path)
	if !ok {
		return nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Render: 템플릿 문자열의 {key} 자리표시자를 치환한다. 누락된 파라미터는 그대로 남는다.
func Render(template string, params ...Param) string {
	out := template
	for _, param := range params {
		out = strings.ReplaceAll(out, "{"+param.Key+"}", fmt.Sprint(param.Value))
	}
	return out
}

// Param: 템플릿 치환 파라미터
type Param struct {
	Key   string
	Value any
}

// P: Param 생성 단축 함수
func P(key string, value any) Param {
	return Param{Key: key, Value: value}
}

func resolvePath(root map[string]any, path []string) (any, bool) {
	var current any = root
	for _, part := range path {
		nextMap, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := nextMap[part]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func normalizeYAMLValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, vv := range typed {
			out[k] = normalizeYAMLValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, vv := range typed {
			out[fmt.Sprint(k)] = normalizeYAMLValue(vv)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, vv := range typed {
			out = append(out, normalizeYAMLValue(vv))
		}
		return out
	default:
		return v
	}
}
