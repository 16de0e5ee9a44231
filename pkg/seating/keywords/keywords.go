package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/seating/pkg/seating/stoplist"
)

const (
	// DefaultMinLength is the shortest token kept; anything of two runes or
	// fewer is discarded.
	DefaultMinLength = 3

	// DefaultMaxKeywords caps the number of keywords taken from one description.
	DefaultMaxKeywords = 10
)

// Extractor turns free text into a bounded list of significant tokens
type Extractor struct {
	stops       *stoplist.Manager
	minLength   int
	maxKeywords int
}

// Options tunes an Extractor. Zero values fall back to the defaults.
type Options struct {
	MinLength   int
	MaxKeywords int
}

// New creates an extractor with the given stopword list and default limits
func New(stopwords []string) *Extractor {
	return NewWithOptions(stopwords, Options{})
}

// NewWithOptions creates an extractor with custom limits
func NewWithOptions(stopwords []string, opts Options) *Extractor {
	lowered := make([]string, 0, len(stopwords))
	for _, w := range stopwords {
		lowered = append(lowered, strings.ToLower(w))
	}
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = DefaultMaxKeywords
	}
	return &Extractor{
		stops:       stoplist.NewManager(lowered),
		minLength:   opts.MinLength,
		maxKeywords: opts.MaxKeywords,
	}
}

// Default returns an extractor using the built-in English stoplist
func Default() *Extractor {
	return New(stoplist.Default())
}

// Extract returns up to MaxKeywords tokens in first-seen order.
// Punctuation separates words; letters, digits and underscores form them.
// Duplicates are kept: consumers apply set semantics.
func (e *Extractor) Extract(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() bool {
		if current.Len() == 0 {
			return len(tokens) < e.maxKeywords
		}
		word := current.String()
		current.Reset()
		if e.keep(word) {
			tokens = append(tokens, word)
		}
		return len(tokens) < e.maxKeywords
	}

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if !flush() {
			return tokens
		}
	}
	flush()

	return tokens
}

// Set returns the extracted keywords as a set
func (e *Extractor) Set(text string) map[string]struct{} {
	tokens := e.Extract(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// Stopwords exposes the active stoplist
func (e *Extractor) Stopwords() *stoplist.Manager {
	return e.stops
}

func (e *Extractor) keep(word string) bool {
	if utf8.RuneCountInString(word) < e.minLength {
		return false
	}
	return !e.stops.IsStop(word)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
