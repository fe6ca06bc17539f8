package audit

// PredictedPrecedence states which tool of an overlapping group the
// model would likely select, and why.
type PredictedPrecedence struct {
	Tools            []string `json:"tools"`
	LikelySelection  string   `json:"likely_selection"`
	Reason           string   `json:"reason"`
	ConflictingTools []string `json:"conflicting_tools"`
}

// OverlapAnalysis groups tools with overlapping functionality.
type OverlapAnalysis struct {
	Description         string                `json:"description"`
	PredictedPrecedence []PredictedPrecedence `json:"predicted_precedence"`
}

// IssueCategory describes one class of description bias and the tools
// it affects.
type IssueCategory struct {
	Description   string   `json:"description"`
	AffectedTools []string `json:"affected_tools"`
}

// Recommendations lists suggested description fixes.
type Recommendations struct {
	Suggestions []string `json:"suggestions"`
}

// Analysis is the structured audit result.
type Analysis struct {
	OverlappingFunctionality       OverlapAnalysis `json:"overlapping_functionality"`
	InfluencingOrPersuasive        IssueCategory   `json:"influencing_or_persuasive_language"`
	CraftedOrInformalTone          IssueCategory   `json:"crafted_or_informal_tone"`
	AttentionSeekingWording        IssueCategory   `json:"attention_seeking_wording"`
	InconsistencyInToneOrStructure IssueCategory   `json:"inconsistency_in_tone_or_structure"`
	Recommendations                Recommendations `json:"recommendations"`
}
