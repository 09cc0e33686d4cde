// Package scoring reduces questionnaire answers into category scores, an
// overall weighted score and a discrete classification tier. All operations
// are pure functions over immutable inputs.
package scoring

import (
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// ErrNoResults is returned when an overall score is requested for an empty
// set of category results. This is distinct from the per-category vacuous
// pass: an empty questionnaire run is "nothing to score yet", not 0 or 100.
var ErrNoResults = goerr.New("no category results to combine")

const (
	tierLowThreshold    = 80.0
	tierMediumThreshold = 60.0
)

// Classify maps a 0-100 score onto the fixed three-tier scale. The lower
// bound of each tier is inclusive: exactly 80 is TierLow, exactly 60 is
// TierMedium.
func Classify(score float64) types.Tier {
	switch {
	case score >= tierLowThreshold:
		return types.TierLow
	case score >= tierMediumThreshold:
		return types.TierMedium
	default:
		return types.TierHigh
	}
}

// ScoreCategory scores one category against an answer set. Questions
// without a recorded answer count as not assessed (full weight, zero
// credit); not-applicable answers are excluded from both the earned credit
// and the total weight. A category with no applicable weight scores 100 by
// convention.
func ScoreCategory(cat *model.Category, answers model.AnswerSet) model.CategoryResult {
	var earned, total float64
	for i := range cat.Questions {
		q := &cat.Questions[i]
		w := q.EffectiveWeight()

		ratio, applicable := answers[q.ID].Normalize().Credit()
		if !applicable {
			continue
		}
		earned += w * ratio
		total += w
	}

	score := 100.0
	if total > 0 {
		score = 100 * earned / total
	}

	return model.CategoryResult{
		CategoryID: cat.ID,
		Name:       cat.Name,
		Weight:     cat.EffectiveWeight(),
		Score:      score,
		Tier:       Classify(score),
	}
}

// ScoreQuestionnaire scores every category of the questionnaire in
// declaration order
func ScoreQuestionnaire(qn *model.Questionnaire, answers model.AnswerSet) []model.CategoryResult {
	results := make([]model.CategoryResult, len(qn.Categories))
	for i := range qn.Categories {
		results[i] = ScoreCategory(&qn.Categories[i], answers)
	}
	return results
}

// ScoreOverall combines category results into an overall score and its
// classification tier. CombineWeighted weights each score by its category
// weight; CombineMean is the plain arithmetic mean. An empty result set
// fails with ErrNoResults.
func ScoreOverall(results []model.CategoryResult, mode types.CombineMode) (float64, types.Tier, error) {
	if len(results) == 0 {
		return 0, "", goerr.Wrap(ErrNoResults, "overall score is undefined", goerr.V("mode", mode))
	}

	var weightedSum, totalWeight float64
	for _, r := range results {
		w := 1.0
		if mode.Normalize() == types.CombineWeighted {
			w = r.Weight
		}
		weightedSum += r.Score * w
		totalWeight += w
	}

	overall := weightedSum / totalWeight
	return overall, Classify(overall), nil
}

// CountCriticalIssues counts critical-priority questions answered
// non-compliant across all categories. The count is surfaced next to the
// score as a go/no-go signal; it never feeds back into the score itself.
func CountCriticalIssues(qn *model.Questionnaire, answers model.AnswerSet) int {
	count := 0
	for i := range qn.Categories {
		for _, q := range qn.Categories[i].Questions {
			if q.Priority == types.PriorityCritical && answers[q.ID] == types.AnswerNonCompliant {
				count++
			}
		}
	}
	return count
}

// AttentionItems collects questions answered non-compliant or partial,
// ordered by priority (critical first) and by declaration order within the
// same priority.
func AttentionItems(qn *model.Questionnaire, answers model.AnswerSet) []model.AttentionItem {
	var items []model.AttentionItem
	for i := range qn.Categories {
		cat := &qn.Categories[i]
		for _, q := range cat.Questions {
			status := answers[q.ID]
			if status != types.AnswerNonCompliant && status != types.AnswerPartial {
				continue
			}
			items = append(items, model.AttentionItem{
				QuestionID: q.ID,
				CategoryID: cat.ID,
				Prompt:     q.Prompt,
				Priority:   q.Priority,
				Status:     status,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Priority.Rank() < items[j].Priority.Rank()
	})
	return items
}

// Round1 rounds a score to one decimal place for display. Aggregation
// always works on the unrounded value.
func Round1(score float64) float64 {
	return math.Round(score*10) / 10
}
