package progress

import (
	"fmt"
	"sort"
)

// WordStats counts the answers given for one headword.
type WordStats struct {
	Headword  string `json:"headword"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// Summary aggregates a list of attempts.
type Summary struct {
	Total     int         `json:"total"`
	Correct   int         `json:"correct"`
	Incorrect int         `json:"incorrect"`
	Accuracy  float64     `json:"accuracy"`
	Words     int         `json:"words"`
	Weakest   []WordStats `json:"weakest"`
}

// PeriodStats holds the counts of one month ("2025-01").
type PeriodStats struct {
	Period      string `json:"period"`
	Attempts    int    `json:"attempts"`
	Correct     int    `json:"correct"`
	UniqueWords int    `json:"unique_words"`
}

const weakestLimit = 10

// Summarize counts attempts and lists the words missed most often, most
// misses first. Words never missed are not listed.
func Summarize(attempts []Attempt) Summary {
	var summary Summary
	byWord := make(map[string]*WordStats)
	for _, a := range attempts {
		stats, ok := byWord[a.Headword]
		if !ok {
			stats = &WordStats{Headword: a.Headword}
			byWord[a.Headword] = stats
		}
		summary.Total++
		if a.Correct {
			summary.Correct++
			stats.Correct++
		} else {
			summary.Incorrect++
			stats.Incorrect++
		}
	}
	summary.Words = len(byWord)
	if summary.Total > 0 {
		summary.Accuracy = float64(summary.Correct) / float64(summary.Total)
	}

	for _, stats := range byWord {
		if stats.Incorrect > 0 {
			summary.Weakest = append(summary.Weakest, *stats)
		}
	}
	sort.Slice(summary.Weakest, func(i, j int) bool {
		a, b := summary.Weakest[i], summary.Weakest[j]
		if a.Incorrect != b.Incorrect {
			return a.Incorrect > b.Incorrect
		}
		if a.Correct != b.Correct {
			return a.Correct < b.Correct
		}
		return a.Headword < b.Headword
	})
	if len(summary.Weakest) > weakestLimit {
		summary.Weakest = summary.Weakest[:weakestLimit]
	}
	return summary
}

// Monthly groups attempts by the month they were answered in, newest first.
// year and month filter the result; 0 means no filter.
func Monthly(attempts []Attempt, year, month int) []PeriodStats {
	type periodData struct {
		attempts int
		correct  int
		words    map[string]struct{}
	}
	stats := make(map[string]*periodData)

	for _, a := range attempts {
		if a.AnsweredAt.IsZero() {
			continue
		}
		if !matchesFilter(a.AnsweredAt.Year(), int(a.AnsweredAt.Month()), year, month) {
			continue
		}
		period := fmt.Sprintf("%d-%02d", a.AnsweredAt.Year(), int(a.AnsweredAt.Month()))
		data, ok := stats[period]
		if !ok {
			data = &periodData{words: make(map[string]struct{})}
			stats[period] = data
		}
		data.attempts++
		if a.Correct {
			data.correct++
		}
		data.words[a.Headword] = struct{}{}
	}

	periods := make([]PeriodStats, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, PeriodStats{
			Period:      period,
			Attempts:    data.attempts,
			Correct:     data.correct,
			UniqueWords: len(data.words),
		})
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Period > periods[j].Period
	})
	return periods
}

func matchesFilter(logYear, logMonth, filterYear, filterMonth int) bool {
	if filterYear == 0 {
		return true
	}
	if logYear != filterYear {
		return false
	}
	if filterMonth == 0 {
		return true
	}
	return logMonth == filterMonth
}
