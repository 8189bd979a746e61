// Package textnorm turns raw extractor output into clean, comparable text:
// it repairs a known set of mis-encoded accented sequences, optionally
// transliterates to ASCII, lowercases, and collapses whitespace runs.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"

	anyascii "github.com/anyascii/go"

	"github.com/doctract/doctract/pkg/utils"
)

// accentRepair is the fixed table of literal substring replacements that
// repair mojibake sequences produced by double-encoded document exports.
// The pairs are applied sequentially, one full pass each, in this order.
var accentRepair = []struct {
	old string
	new string
}{
	{"Ă¨", "e"},
	{"ĂŠ", "e"},
	{"Ăť", "u"},
	{"â", "a"},
	{"Ă´", "o"},
	{"Â°", "°"},
	{"â", "'"},
	{"ĂŞ", "e"},
	{"ÂŤ", "«"},
	{"Âť", "»"},
	{"Ă", "a"},
	{"AŠ", "e"},
	{"AŞ", "e"},
	{"A¨", "e"},
	{"Ă", "E"},
	{"â˘", "*"},
	{"č", "e"},
	{"’", "'"},
}

var (
	// horizontal whitespace runs (space, tab, form feed, vertical tab)
	spaceRuns = regexp.MustCompile(`[ \t\f\v]+`)
	// line break runs, any mix of \n and \r
	newlineRuns = regexp.MustCompile(`[\n\r]+`)
	// whitespace-padded newline sequences
	paddedNewlines = regexp.MustCompile(`(\r?\s?\n\r?\s?)+`)
)

// Normalize decodes raw extractor output as UTF-8 and applies the full
// cleanup sequence: accent repair, optional ASCII transliteration,
// lowercasing, stripping and whitespace collapsing. The result is
// idempotent: normalizing already-normalized text is a no-op.
func Normalize(raw []byte, removeAccents bool) (string, error) {
	if !utf8.Valid(raw) {
		return "", utils.NewDecodeError("input is not valid UTF-8", nil)
	}

	text := RepairAccents(string(raw))
	if removeAccents {
		text = anyascii.Transliterate(text)
	}
	text = strings.TrimSpace(strings.ToLower(text))
	return CollapseWhitespace(text), nil
}

// RepairAccents applies the fixed mojibake repair table
func RepairAccents(text string) string {
	for _, pair := range accentRepair {
		text = strings.ReplaceAll(text, pair.old, pair.new)
	}
	return text
}

// CollapseWhitespace collapses horizontal whitespace runs into single
// spaces and line break runs into single newlines
func CollapseWhitespace(text string) string {
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = paddedNewlines.ReplaceAllString(text, "\n")
	return text
}
