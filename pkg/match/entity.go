package match

// Assessment describes how well a resume fits a job description. It is
// embedded in an application and has no independent lifecycle.
type Assessment struct {
	// Score is the overall candidate score in [0,10].
	Score float64 `json:"score"`
	// MatchPercentage is in [0,100].
	MatchPercentage float64           `json:"match_percentage"`
	MatchedSkills   []string          `json:"skills_matched"`
	MissingSkills   []string          `json:"skills_missing"`
	Recommendations []string          `json:"recommendations"`
	Analysis        map[string]string `json:"analysis"`
}

// Fallback is the sentinel assessment stored when the oracle call fails for
// any reason. Submissions must still commit with it.
func Fallback(cause string) Assessment {
	return Assessment{
		Score:           0,
		MatchPercentage: 0,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		Recommendations: []string{"Error analyzing resume"},
		Analysis:        map[string]string{"error": cause},
	}
}
