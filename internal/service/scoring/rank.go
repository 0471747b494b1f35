package scoring

import "nmjl-service/internal/card"

// Candidate is one template in a ranking.
type Candidate struct {
	Score       int    `json:"score"`
	UniqueID    string `json:"unique_id"`
	Description string `json:"description"`
	PatternKey  string `json:"pattern_key"`
}

// Rank scores observed against every template and returns all templates tied
// at the highest score, in template order, together with that score. Ties
// are never broken. A strictly higher score replaces the list; an equal
// positive score joins it.
func Rank(observed card.Counts, templates []card.Template) ([]Candidate, int) {
	best := []Candidate{}
	highest := -1

	for _, t := range templates {
		score, _ := ScoreTemplate(observed, t)
		c := Candidate{
			Score:       score,
			UniqueID:    t.CompositeID(),
			Description: t.Description,
			PatternKey:  t.Key,
		}
		switch {
		case score > highest:
			highest = score
			best = []Candidate{c}
		case score == highest && score > 0:
			best = append(best, c)
		}
	}
	return best, highest
}
