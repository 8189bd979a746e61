// Package langgate rejects extracted text whose detected language is not
// on the run's allow-list. Gibberish output from corrupted or image-only
// PDFs classifies as no recognizable language, which routes the document
// toward the OCR fallback.
package langgate

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/doctract/doctract/pkg/constants"
	"github.com/doctract/doctract/pkg/interfaces"
)

// Gate is the text quality check applied after native extraction
type Gate struct {
	detector  interfaces.LanguageDetector
	allowed   map[string]bool
	threshold float64
	logger    zerolog.Logger
}

// New creates a language gate over the given detector. An empty allow-list
// disables the gate entirely.
func New(detector interfaces.LanguageDetector, allowedLangs []string, log zerolog.Logger) *Gate {
	allowed := make(map[string]bool, len(allowedLangs))
	for _, lang := range allowedLangs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			allowed[lang] = true
		}
	}

	return &Gate{
		detector:  detector,
		allowed:   allowed,
		threshold: constants.LangConfidenceThreshold,
		logger:    log,
	}
}

// Enabled reports whether the gate actually filters anything
func (g *Gate) Enabled() bool {
	return len(g.allowed) > 0
}

// Accept reports whether the text passes the language check. The text is
// accepted iff the top-ranked guess is an allowed language with
// probability at or above the threshold.
func (g *Gate) Accept(text string) bool {
	if !g.Enabled() {
		return true
	}

	lang, prob, err := g.detector.Detect(text)
	if err != nil {
		g.logger.Debug().Err(err).Msg("language detection failed")
		return false
	}

	g.logger.Debug().Str("lang", lang).Float64("prob", prob).Msg("language detected")
	return g.allowed[lang] && prob >= g.threshold
}
