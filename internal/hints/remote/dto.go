package remote

// generateRequest: 원격 힌트 생성 API 요청 바디
type generateRequest struct {
	Word       string `json:"word"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
}

// generateResponse: 원격 힌트 생성 API 응답 바디
type generateResponse struct {
	Success bool     `json:"success"`
	Hints   []string `json:"hints"`
	Error   string   `json:"error,omitempty"`
}
