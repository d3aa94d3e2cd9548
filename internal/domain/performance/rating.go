package performance

import (
	"math"
	"strconv"
)

// OverallRating averages each category's rated criteria and then weights the
// category means. Categories without ratings are ignored; when every rated
// category has zero weight the plain mean of category means is used.
func OverallRating(categories []Category) *float64 {
	var weighted, weights, plain float64
	rated := 0
	for _, category := range categories {
		sum, count := 0.0, 0
		for _, criterion := range category.Criteria {
			if criterion.Rating == nil {
				continue
			}
			sum += *criterion.Rating
			count++
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		weighted += mean * category.Weight
		weights += category.Weight
		plain += mean
		rated++
	}
	if rated == 0 {
		return nil
	}
	var result float64
	if weights > 0 {
		result = weighted / weights
	} else {
		result = plain / float64(rated)
	}
	result = math.Round(result*100) / 100
	return &result
}

func buildCycleSummary(cycleID string, evaluations []Evaluation) CycleSummary {
	summary := CycleSummary{
		CycleID:            cycleID,
		EvaluationsTotal:   len(evaluations),
		ByStatus:           map[string]int{},
		ByType:             map[string]int{},
		RatingDistribution: map[string]int{},
	}
	completed := 0
	var ratingSum float64
	ratingCount := 0
	for _, evaluation := range evaluations {
		summary.ByStatus[evaluation.Status]++
		summary.ByType[string(evaluation.EvaluationType)]++
		if evaluation.Status != EvaluationStatusDraft {
			completed++
		}
		if evaluation.OverallRating != nil {
			ratingSum += *evaluation.OverallRating
			ratingCount++
			bucket := strconv.Itoa(int(math.Round(*evaluation.OverallRating)))
			summary.RatingDistribution[bucket]++
		}
	}
	if summary.EvaluationsTotal > 0 {
		summary.CompletionRate = float64(completed) / float64(summary.EvaluationsTotal)
	}
	if ratingCount > 0 {
		avg := math.Round(ratingSum/float64(ratingCount)*100) / 100
		summary.AverageRating = &avg
	}
	return summary
}
