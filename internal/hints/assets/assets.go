package assets

import _ "embed" // 에셋 임베드용

// HintContentYAML 는 정적 힌트/원격 폴백 힌트 문구 테이블 YAML이다.
//
//go:embed content/hint-content.yml
var HintContentYAML string
