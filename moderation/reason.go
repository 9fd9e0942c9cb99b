package moderation

// ReasonCode is a stable identifier explaining why a verdict was reached.
// Display wording lives in reasonMessages and may change freely.
type ReasonCode string

const (
	ReasonGeneralAppropriate    ReasonCode = "GENERAL_APPROPRIATE"
	ReasonSportsAppropriate     ReasonCode = "SPORTS_APPROPRIATE"
	ReasonStrongLanguage        ReasonCode = "STRONG_LANGUAGE"
	ReasonInjuryReference       ReasonCode = "INJURY_REFERENCE"
	ReasonHealthReference       ReasonCode = "HEALTH_REFERENCE"
	ReasonVeryNegative          ReasonCode = "VERY_NEGATIVE"
	ReasonInappropriateLanguage ReasonCode = "INAPPROPRIATE_LANGUAGE"
	ReasonUnsafeBehavior        ReasonCode = "UNSAFE_BEHAVIOR"
	ReasonAdultContent          ReasonCode = "ADULT_CONTENT"
	ReasonViolenceContent       ReasonCode = "VIOLENCE_CONTENT"
	ReasonSensitiveContent      ReasonCode = "SENSITIVE_CONTENT"
	ReasonMedicalContent        ReasonCode = "MEDICAL_CONTENT"
)

var reasonMessages = map[ReasonCode]string{
	ReasonGeneralAppropriate:    "Content appears appropriate",
	ReasonSportsAppropriate:     "Contains appropriate sports-related content",
	ReasonStrongLanguage:        "Contains strong competitive language",
	ReasonInjuryReference:       "Contains injury-related content",
	ReasonHealthReference:       "Contains health-related content",
	ReasonVeryNegative:          "Contains very negative content",
	ReasonInappropriateLanguage: "Contains inappropriate language",
	ReasonUnsafeBehavior:        "Contains references to unsafe behavior",
	ReasonAdultContent:          "Contains adult content",
	ReasonViolenceContent:       "Contains violent content",
	ReasonSensitiveContent:      "Contains sensitive content",
	ReasonMedicalContent:        "Contains medical content",
}

// Message returns the human readable description of the reason, or the code
// itself if none is registered.
func (r ReasonCode) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// Messages maps a list of reason codes to their display messages, in order.
func Messages(reasons []ReasonCode) []string {
	messages := make([]string, len(reasons))
	for i, r := range reasons {
		messages[i] = r.Message()
	}
	return messages
}
