// Package sigsearch is a full text index over function signatures, so that
// a signature can be found from words of its name ("swap exact tokens").
package sigsearch

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"

	hcommon "github.com/tranvictor/humanizer/common"
)

const wordsField = "words"

// Hit is one search result.
type Hit struct {
	Selector  string
	Signature string
	Score     float64
}

// Index keeps signatures in an in-memory bleve index keyed by selector.
type Index struct {
	index      bleve.Index
	signatures map[string]string
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName
	textFieldMapping.Store = false

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt(wordsField, textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = defaultMapping
	indexMapping.DefaultAnalyzer = en.AnalyzerName
	return indexMapping
}

// New indexes sigs. Entries that are not valid signatures are skipped.
func New(sigs []string) (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("couldn't create signature index: %w", err)
	}
	res := &Index{index: index, signatures: map[string]string{}}

	batch := index.NewBatch()
	for _, sig := range sigs {
		m, err := hcommon.MethodFromSignature(sig)
		if err != nil {
			continue
		}
		selector := hcommon.SignatureSelector(m.Sig)
		if _, found := res.signatures[selector]; found {
			continue
		}
		res.signatures[selector] = m.Sig
		if err := batch.Index(selector, map[string]any{wordsField: strings.Join(SplitName(m.RawName), " ")}); err != nil {
			return nil, fmt.Errorf("couldn't index %s: %w", m.Sig, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("couldn't build signature index: %w", err)
	}
	return res, nil
}

// Len is the number of indexed signatures.
func (i *Index) Len() int {
	return len(i.signatures)
}

// Search returns at most limit signatures matching any word of query, best
// first.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	words := []string{}
	for _, w := range strings.Fields(query) {
		words = append(words, SplitName(w)...)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty query")
	}
	q := bleve.NewMatchQuery(strings.Join(words, " "))
	q.SetField(wordsField)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("signature search failed: %w", err)
	}
	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{Selector: h.ID, Signature: i.signatures[h.ID], Score: h.Score})
	}
	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

// SplitName breaks a camelCase or snake_case identifier into lower-cased
// words: "safeTransferFrom" gives safe, transfer, from and "getERC20Token"
// gives get, erc20, token.
func SplitName(name string) []string {
	runes := []rune(name)
	words := []string{}
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, strings.ToLower(string(runes[start:end])))
		}
		start = -1
	}
	for idx, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(idx)
			continue
		}
		if start < 0 {
			start = idx
			continue
		}
		prev := runes[idx-1]
		if unicode.IsUpper(r) {
			nextLower := idx+1 < len(runes) && unicode.IsLower(runes[idx+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush(idx)
				start = idx
			}
		}
	}
	flush(len(runes))
	return words
}
