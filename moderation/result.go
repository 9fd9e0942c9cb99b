package moderation

// Verdict is the part of a moderation result shared by every content type.
type Verdict struct {
	IsAppropriate  bool           `json:"is_appropriate"`
	Warnings       []string       `json:"warnings"`
	Flags          []string       `json:"flags"`
	Reasons        []ReasonCode   `json:"reasons"`
	Recommendation Recommendation `json:"recommendation"`
}

// Result is either an *ImageResult or a *TextResult, never both.
type Result interface {
	Base() *Verdict
	isResult()
}

type ImageResult struct {
	Verdict
	SafeSearch SafeSearch `json:"safe_search"`
	Labels     []Signal   `json:"labels"`
}

type TextResult struct {
	Verdict
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Categories []Signal  `json:"categories"`
}

func (r *ImageResult) Base() *Verdict { return &r.Verdict }
func (r *TextResult) Base() *Verdict  { return &r.Verdict }

func (*ImageResult) isResult() {}
func (*TextResult) isResult()  {}
