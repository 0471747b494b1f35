package scoring

import (
	"sort"
	"strconv"

	"nmjl-service/internal/card"
)

// ScoreTemplate counts how many observed tiles the template explains.
// Groups are matched greedily, heaviest first, against a working copy of
// the multiset; consumed tiles are never given back, so the score can
// understate the best possible assignment. The working copy is returned.
func ScoreTemplate(observed card.Counts, t card.Template) (int, card.Counts) {
	work := observed.Clone()

	if t.IsAllPairs() {
		pairs := 0
		for _, n := range work {
			if n > 0 {
				pairs += n / 2
			}
		}
		return pairs * 2, work
	}

	groups := append([]card.Group(nil), t.Groups...)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Type.Weight() > groups[j].Type.Weight()
	})

	score := 0
	for _, g := range groups {
		switch {
		case g.Type == card.ConstraintSequence:
			score += matchRun(work, g.Values)
		case g.Type.Size() > 0:
			score += matchSet(work, g.Values, g.Type.Size())
		}
	}
	return score, work
}

// matchSet consumes n identical tiles for the first candidate that has them.
func matchSet(work card.Counts, d card.Descriptor, n int) int {
	switch d.Kind {
	case card.DescriptorEmpty:
		return 0
	case card.DescriptorSymbolic:
		if d.Category == card.CategoryFlower {
			return takeFlowers(work, n)
		}
		for _, t := range d.Category.Tiles() {
			if take(work, t, n) {
				return n
			}
		}
		return 0
	}

	for _, lit := range d.Values {
		honor := card.LiteralTile(lit, "")
		if honor.IsHonor() {
			if take(work, honor, n) {
				return n
			}
			continue
		}
		if !honor.IsPending() {
			continue
		}
		for _, s := range card.ScoringSuits {
			if take(work, card.LiteralTile(lit, s), n) {
				return n
			}
		}
	}
	return 0
}

// matchRun consumes one tile of each value of a strictly consecutive run in
// the first suit holding all of them.
func matchRun(work card.Counts, d card.Descriptor) int {
	if len(d.Values) == 0 {
		return 0
	}
	values := make([]int, len(d.Values))
	for i, lit := range d.Values {
		v, err := strconv.Atoi(lit)
		if err != nil || v < 1 || v > 9 {
			return 0
		}
		values[i] = v
	}
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return 0
		}
	}

	for _, s := range card.ScoringSuits {
		run := make([]card.Tile, len(values))
		complete := true
		for i, v := range values {
			run[i] = card.NumberTile(v, s)
			if work[run[i]] <= 0 {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for _, t := range run {
			work[t]--
		}
		return len(run)
	}
	return 0
}

// takeFlowers draws n tiles from the flower pool; flower slots are
// interchangeable for matching.
func takeFlowers(work card.Counts, n int) int {
	avail := 0
	for _, f := range card.FlowerTiles() {
		avail += work[f]
	}
	if avail < n {
		return 0
	}
	left := n
	for _, f := range card.FlowerTiles() {
		k := work[f]
		if k > left {
			k = left
		}
		work[f] -= k
		left -= k
	}
	return n
}

func take(work card.Counts, t card.Tile, n int) bool {
	if work[t] < n {
		return false
	}
	work[t] -= n
	return true
}

// ScoreHand counts observed tiles that a concrete hand requires.
func ScoreHand(observed card.Counts, h card.PlayableHand) int {
	score := 0
	for t, need := range h.Counts {
		if t.IsSentinel() {
			continue
		}
		have := observed[t]
		if have > need {
			have = need
		}
		if have > 0 {
			score += have
		}
	}
	return score
}

// MissingTiles lists, in hand order, the tiles the observed multiset lacks
// to complete h.
func MissingTiles(observed card.Counts, h card.PlayableHand) []card.Tile {
	work := observed.Clone()
	var missing []card.Tile
	for _, t := range h.Tiles {
		if work[t] > 0 {
			work[t]--
			continue
		}
		missing = append(missing, t)
	}
	return missing
}
