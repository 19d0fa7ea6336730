package model

import "time"

// ResearchReport is a synthesized deep-research report: generated
// questions, researched in parallel, combined by an LLM.
type ResearchReport struct {
	ID            int64
	Topic         string
	Questions     []string
	Report        string
	CitationCount int
	ModelUsed     string
	CreatedAt     time.Time
}
