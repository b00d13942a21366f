// Package summary computes descriptive aggregates over a loaded catalog.
// Every function is a pure reduction over the record slice; nothing here
// mutates the input, so aggregates can run in any order.
package summary

import (
	"sort"

	"title-lens/dataset"
)

// Bucket is one entry of a ranked distribution.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// YearCount is one point of a year trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Series is one named value sequence of a grouped distribution, aligned
// with the parent Grouped.Labels.
type Series struct {
	Name   string `json:"name"`
	Counts []int  `json:"counts"`
}

// Grouped is a distribution broken down by a secondary dimension,
// e.g. titles per country split by content type.
type Grouped struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// TypeDistribution counts titles per content type. Records with a
// missing type are excluded; the loader reports them separately so the
// bucket counts always sum to total minus skipped.
func TypeDistribution(titles []dataset.Title) []Bucket {
	counts := make(map[string]int)
	for _, t := range titles {
		if t.Type == "" {
			continue
		}
		counts[t.Type]++
	}
	return rank(counts, 0)
}

// CountryDistribution counts titles per production country, split on the
// multi-value delimiter so co-productions increment every listed country.
// The result is ranked descending and truncated to topN (0 keeps all).
func CountryDistribution(titles []dataset.Title, topN int) []Bucket {
	counts := make(map[string]int)
	for _, t := range titles {
		for _, c := range t.Countries {
			counts[c]++
		}
	}
	return rank(counts, topN)
}

// GenreDistribution counts titles per genre under the same split-and-count
// policy as CountryDistribution.
func GenreDistribution(titles []dataset.Title, topN int) []Bucket {
	counts := make(map[string]int)
	for _, t := range titles {
		for _, g := range t.Genres {
			counts[g]++
		}
	}
	return rank(counts, topN)
}

// YearTrend counts titles per release year, ordered ascending and
// zero-filled over the observed range so line charts get a continuous
// axis. Records with an unparseable year are excluded.
func YearTrend(titles []dataset.Title) []YearCount {
	return yearCounts(titles, func(t dataset.Title) int { return t.ReleaseYear })
}

// AddedTrend counts titles per catalog-addition year, derived from the
// date_added column. Records without a parseable date are excluded.
func AddedTrend(titles []dataset.Title) []YearCount {
	return yearCounts(titles, func(t dataset.Title) int { return t.AddedYear })
}

func yearCounts(titles []dataset.Title, year func(dataset.Title) int) []YearCount {
	counts := make(map[int]int)
	min, max := 0, 0
	for _, t := range titles {
		y := year(t)
		if y == 0 {
			continue
		}
		counts[y]++
		if min == 0 || y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}

	if len(counts) == 0 {
		return nil
	}

	trend := make([]YearCount, 0, max-min+1)
	for y := min; y <= max; y++ {
		trend = append(trend, YearCount{Year: y, Count: counts[y]})
	}
	return trend
}

// TypeByCountry breaks the top-N countries down by content type, one
// series per type observed in the dataset. Country order follows the
// overall country ranking; series are ordered by name for determinism.
func TypeByCountry(titles []dataset.Title, topN int) Grouped {
	top := CountryDistribution(titles, topN)
	if len(top) == 0 {
		return Grouped{}
	}

	labels := make([]string, len(top))
	position := make(map[string]int, len(top))
	for i, b := range top {
		labels[i] = b.Label
		position[b.Label] = i
	}

	perType := make(map[string][]int)
	for _, t := range titles {
		if t.Type == "" {
			continue
		}
		for _, c := range t.Countries {
			i, ok := position[c]
			if !ok {
				continue
			}
			if _, ok := perType[t.Type]; !ok {
				perType[t.Type] = make([]int, len(labels))
			}
			perType[t.Type][i]++
		}
	}

	names := make([]string, 0, len(perType))
	for name := range perType {
		names = append(names, name)
	}
	sort.Strings(names)

	grouped := Grouped{Labels: labels}
	for _, name := range names {
		grouped.Series = append(grouped.Series, Series{Name: name, Counts: perType[name]})
	}
	return grouped
}

// TotalCount sums the counts of a ranked distribution.
func TotalCount(buckets []Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

// rank orders counts descending, breaking ties alphabetically so repeated
// runs over the same input produce identical output, then truncates to
// topN when topN > 0.
func rank(counts map[string]int, topN int) []Bucket {
	buckets := make([]Bucket, 0, len(counts))
	for label, count := range counts {
		buckets = append(buckets, Bucket{Label: label, Count: count})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})

	if topN > 0 && len(buckets) > topN {
		buckets = buckets[:topN]
	}
	return buckets
}
