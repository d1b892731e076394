package search

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
)

const (
	defaultThreshold = 0.3
	defaultLimit     = 5

	// candidateSize bounds how many bleve hits are pulled in for re-scoring.
	candidateSize = 100
)

// Document is one indexed entry: field name -> values (multi-valued fields
// hold aliases, e.g. the countries of a currency).
type Document struct {
	Fields map[string][]string
}

// Index is an immutable approximate-match index over a document collection.
// Built once at startup; safe for unsynchronized concurrent reads.
//
// Candidate recall runs through an in-memory bleve index (term, prefix and
// Levenshtein-automaton fuzzy queries per field, boosted by field weight).
// Candidates are then re-scored against the normalized-distance contract so
// that exact matches always score 0 and results past the threshold drop out.
type Index struct {
	index     bleve.Index
	docs      []Document
	fields    []Field
	maxWeight float64
	opts      Options
}

var _ Engine = (*Index)(nil)

func NewIndex(docs []Document, fields []Field, opts Options) (*Index, error) {
	if opts.Threshold == 0 {
		opts.Threshold = defaultThreshold
	}
	if opts.Limit == 0 {
		opts.Limit = defaultLimit
	}

	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %v", err)
	}

	batch := index.NewBatch()
	for pos, doc := range docs {
		indexed := make(map[string]interface{}, len(doc.Fields))
		for name, values := range doc.Fields {
			indexed[name] = values
		}
		if err := batch.Index(strconv.Itoa(pos), indexed); err != nil {
			return nil, fmt.Errorf("failed to add to batch: %v", err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to execute batch: %v", err)
	}

	maxWeight := 0.0
	for _, f := range fields {
		if f.Weight > maxWeight {
			maxWeight = f.Weight
		}
	}

	return &Index{
		index:     index,
		docs:      docs,
		fields:    fields,
		maxWeight: maxWeight,
		opts:      opts,
	}, nil
}

// Search returns the ranked matches for query, best first, truncated to the
// configured limit. It never fails: index errors degrade to a full scan.
func (ix *Index) Search(query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		if !ix.opts.EmptyAll {
			return nil
		}
		all := make([]Match, len(ix.docs))
		for pos := range ix.docs {
			all[pos] = Match{Pos: pos}
		}
		return all
	}

	candidates := ix.candidates(query)

	matches := make([]Match, 0, len(candidates))
	for _, pos := range candidates {
		score, ok := ix.scoreDoc(query, ix.docs[pos])
		if ok {
			matches = append(matches, Match{Pos: pos, Score: score})
		}
	}

	// Ascending score, original collection order breaks ties.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].Pos < matches[j].Pos
	})

	if len(matches) > ix.opts.Limit {
		matches = matches[:ix.opts.Limit]
	}
	return matches
}

// candidates pulls plausible positions from bleve. Positions come back sorted
// so re-scoring stays deterministic.
func (ix *Index) candidates(query string) []int {
	dis := bleve.NewDisjunctionQuery()
	for _, f := range ix.fields {
		exact := bleve.NewTermQuery(query)
		exact.SetField(f.Name)
		exact.SetBoost(f.Weight * 10.0)

		prefix := bleve.NewPrefixQuery(query)
		prefix.SetField(f.Name)
		prefix.SetBoost(f.Weight * 5.0)

		match := bleve.NewMatchQuery(query)
		match.SetField(f.Name)
		match.SetBoost(f.Weight * 3.0)

		fuzzy := bleve.NewFuzzyQuery(query)
		fuzzy.SetField(f.Name)
		fuzzy.SetFuzziness(2)
		fuzzy.SetBoost(f.Weight * 2.0)

		dis.AddQuery(exact, prefix, match, fuzzy)
	}

	request := bleve.NewSearchRequest(dis)
	request.Size = candidateSize

	result, err := ix.index.Search(request)
	if err != nil {
		log.Printf("search: index query failed, falling back to full scan: %v", err)
		return ix.allPositions()
	}

	positions := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		pos, err := strconv.Atoi(hit.ID)
		if err != nil || pos < 0 || pos >= len(ix.docs) {
			continue
		}
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

func (ix *Index) allPositions() []int {
	positions := make([]int, len(ix.docs))
	for i := range positions {
		positions[i] = i
	}
	return positions
}

// scoreDoc combines per-field scores. The threshold gates on the raw distance
// of each field, so a low-weight field can still produce a match; the ranking
// score scales each field by maxWeight/weight so matches on heavier fields
// win, and takes the minimum across fields.
func (ix *Index) scoreDoc(query string, doc Document) (float64, bool) {
	best := 1.0
	matched := false
	for _, f := range ix.fields {
		fieldBest := 1.0
		for _, value := range doc.Fields[f.Name] {
			if s := normalizedScore(query, strings.ToLower(value)); s < fieldBest {
				fieldBest = s
			}
		}
		if fieldBest <= ix.opts.Threshold {
			matched = true
		}
		adjusted := fieldBest * ix.maxWeight / f.Weight
		if adjusted > 1 {
			adjusted = 1
		}
		if adjusted < best {
			best = adjusted
		}
	}
	return best, matched
}

func (ix *Index) Close() error {
	return ix.index.Close()
}
