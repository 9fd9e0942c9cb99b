package moderation

// SeverityTable resolves canonical likelihood names to severities.
var SeverityTable = map[string]int{
	"UNKNOWN":       0,
	"VERY_UNLIKELY": 1,
	"UNLIKELY":      2,
	"POSSIBLE":      3,
	"LIKELY":        4,
	"VERY_LIKELY":   5,
}

// DefaultConfidenceThreshold is the exclusive lower bound a signal's
// confidence must exceed to match a taxonomy.
const DefaultConfidenceThreshold = 0.5

// DefaultImageTaxonomy is the label taxonomy for image moderation.
func DefaultImageTaxonomy() Taxonomy {
	return Taxonomy{
		Inappropriate: []string{
			"Violence",
			"Weapon",
			"Blood",
			"Adult",
			"Explicit",
			"Drug",
			"Gambling",
			"Alcohol",
		},
		Review: []string{
			"Medical",
			"Health",
			"Injury",
			"Emergency",
		},
		InappropriateReasons: []KeywordReason{
			{Keyword: "adult", Reason: ReasonAdultContent},
			{Keyword: "violence", Reason: ReasonViolenceContent},
		},
		DefaultReason: ReasonSensitiveContent,
		ReviewReasons: []KeywordReason{
			{Keyword: "medical", Reason: ReasonMedicalContent},
			{Keyword: "health", Reason: ReasonMedicalContent},
		},
		Threshold: DefaultConfidenceThreshold,
	}
}

// DefaultTextTaxonomy is the category path taxonomy for text moderation.
func DefaultTextTaxonomy() Taxonomy {
	return Taxonomy{
		Inappropriate: []string{
			"/Adult/",
			"/Violence/",
			"/Drugs/",
			"/Gambling/",
			"/Weapons/",
			"/Explicit/",
			"/Religion/",
		},
		Review: []string{
			"/Health/",
			"/Sports/",
			"/Medical/",
			"/Emergency/",
		},
		InappropriateReasons: []KeywordReason{
			{Keyword: "/Adult/", Reason: ReasonAdultContent},
			{Keyword: "/Violence/", Reason: ReasonViolenceContent},
		},
		DefaultReason: ReasonSensitiveContent,
		ReviewReasons: []KeywordReason{
			{Keyword: "/Medical/", Reason: ReasonMedicalContent},
			{Keyword: "/Health/", Reason: ReasonMedicalContent},
		},
		Threshold: DefaultConfidenceThreshold,
	}
}
