// Package annotation parses modification-annotated peptide sequences such as
// "PEP[Common Biological:Phosphorylation on T]TIDE".
package annotation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ChrisMcGann/pepmass/pkg/core"
)

// ErrMalformedAnnotation is returned for unbalanced, nested or empty brackets.
var ErrMalformedAnnotation = errors.New("malformed annotation")

var modPattern = regexp.MustCompile(`\[(.+?)\]`)

// PositionMap maps a backbone offset to the modification tokens found there.
// Offset 0 is the N-terminus, offsets past the last residue the C-terminus.
type PositionMap map[int][]string

// token is one bracketed modification in the scanned string.
type token struct {
	start  int // character offset of '['
	length int // in characters, including both brackets
	text   string
}

// Parse extracts bracketed modification tokens and their backbone offsets.
// Alternative separators are removed first, so tokens joined as "[a]|[b]"
// on one residue stack at the same offset. This also means that offsets in
// later alternatives of an ambiguous sequence are not meaningful.
// Parenthesized labels outside brackets are not residues and are skipped.
func Parse(fullSequence string) (PositionMap, error) {
	seq, err := prepare(fullSequence)
	if err != nil {
		return nil, err
	}

	var tokens []token
	for _, m := range modPattern.FindAllStringSubmatchIndex(seq, -1) {
		tokens = append(tokens, token{
			start:  utf8.RuneCountInString(seq[:m[0]]),
			length: utf8.RuneCountInString(seq[m[0]:m[1]]),
			text:   seq[m[2]:m[3]],
		})
	}

	mods := make(PositionMap, len(tokens))
	for i, pos := range foldPositions(tokens) {
		mods[pos] = append(mods[pos], tokens[i].text)
	}
	return mods, nil
}

// foldPositions converts token offsets to backbone offsets by carrying the
// length of bracket text consumed so far.
func foldPositions(tokens []token) []int {
	positions := make([]int, len(tokens))
	consumed := 0
	for i, tok := range tokens {
		positions[i] = tok.start - consumed
		consumed += tok.length
	}
	return positions
}

// prepare removes separators, checks delimiters and drops labels.
func prepare(fullSequence string) (string, error) {
	seq := RemoveSeparators(fullSequence)
	if err := CheckDelimiters(seq); err != nil {
		return "", err
	}
	return stripLabels(seq), nil
}

// CheckDelimiters reports unbalanced, nested or empty brackets and unbalanced
// or nested parentheses. Parentheses inside brackets, as in "Label:13C(6)",
// belong to the modification name and are not checked.
func CheckDelimiters(seq string) error {
	bracket, paren := -1, -1
	for i, c := range []rune(seq) {
		switch {
		case c == '[' && paren < 0:
			if bracket >= 0 {
				return fmt.Errorf("%w: nested '[' at %d", ErrMalformedAnnotation, i)
			}
			bracket = i
		case c == ']' && paren < 0:
			if bracket < 0 {
				return fmt.Errorf("%w: unmatched ']' at %d", ErrMalformedAnnotation, i)
			}
			if i == bracket+1 {
				return fmt.Errorf("%w: empty modification at %d", ErrMalformedAnnotation, bracket)
			}
			bracket = -1
		case bracket >= 0:
		case c == '(':
			if paren >= 0 {
				return fmt.Errorf("%w: nested '(' at %d", ErrMalformedAnnotation, i)
			}
			paren = i
		case c == ')':
			if paren < 0 {
				return fmt.Errorf("%w: unmatched ')' at %d", ErrMalformedAnnotation, i)
			}
			paren = -1
		}
	}
	if bracket >= 0 {
		return fmt.Errorf("%w: unterminated '[' at %d", ErrMalformedAnnotation, bracket)
	}
	if paren >= 0 {
		return fmt.Errorf("%w: unterminated '(' at %d", ErrMalformedAnnotation, paren)
	}
	return nil
}

// stripLabels removes parenthesized segments outside brackets.
func stripLabels(seq string) string {
	if !strings.Contains(seq, "(") {
		return seq
	}

	var b strings.Builder
	b.Grow(len(seq))
	inBracket, inParen := false, false
	for _, c := range seq {
		switch {
		case inParen:
			inParen = c != ')'
		case inBracket:
			inBracket = c != ']'
			b.WriteRune(c)
		case c == '(':
			inParen = true
		default:
			inBracket = c == '['
			b.WriteRune(c)
		}
	}
	return b.String()
}

// RemoveSeparators drops every alternative separator from s.
func RemoveSeparators(s string) string {
	return strings.ReplaceAll(s, core.AlternativeSeparator, "")
}

// BaseSequence returns the backbone of an annotated sequence. The dash that
// introduces a C-terminal modification ("PEPTIDE-[Amidation]") is dropped.
func BaseSequence(fullSequence string) (string, error) {
	seq, err := prepare(fullSequence)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(modPattern.ReplaceAllString(seq, ""), "-"), nil
}

// StripParentheses removes every parenthesized segment, as used for SILAC
// labels in base sequences. An unterminated '(' drops the rest of the
// string; use CheckDelimiters first when that must be reported.
func StripParentheses(baseSequence string) string {
	if !strings.Contains(baseSequence, "(") {
		return baseSequence
	}

	var b strings.Builder
	b.Grow(len(baseSequence))
	within := false
	for _, c := range baseSequence {
		switch {
		case c == ')':
			within = false
		case c == '(':
			within = true
		case !within:
			b.WriteRune(c)
		}
	}
	return b.String()
}
