package game

// @name Move
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// @name DepthReport
type DepthReport struct {
	Depth     int     `json:"depth"`
	ElapsedMs int64   `json:"elapsed_ms"`
	Nodes     int64   `json:"nodes"`
	Score     int     `json:"score"`
	Proof     bool    `json:"proof"`
	Outcome   string  `json:"outcome,omitempty"`
	Distance  int     `json:"distance,omitempty"`
	PV        []Move  `json:"pv"`
	Line      string  `json:"line"`
	Scaled    float64 `json:"score_scaled"`
}
