package ops

import (
	"math/rand"

	"hookline/internal/config"
)

// SuggestSubjectsOutput contains the result of the SuggestSubjects operation.
type SuggestSubjectsOutput struct {
	Subjects []string `json:"subjects"`
}

// SuggestSubjects returns a random sample of up to MaxSuggestedSubjects
// subjects from the configured pool, for use as prompts or placeholders.
func SuggestSubjects(cfg *config.Config) *SuggestSubjectsOutput {
	pool := cfg.SubjectPool()

	sample := make([]string, len(pool))
	copy(sample, pool)
	rand.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	if len(sample) > MaxSuggestedSubjects {
		sample = sample[:MaxSuggestedSubjects]
	}
	return &SuggestSubjectsOutput{Subjects: sample}
}
