// Package redaction masks credentials pasted into a reminder line. It is
// opt-in: `mmr add --redact` or `add.redact: true` in config.yaml.
package redaction

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// IgnoreFileName holds extra patterns in the mmr home, one regexp per line.
const IgnoreFileName = ".mmrignore"

// Mask is substituted for every matched token.
const Mask = "[REDACTED]"

// tokenShapes only match strings that are credentials by construction, so a
// note like "fix the password: reset flow" passes through untouched.
var tokenShapes = []*regexp.Regexp{
	regexp.MustCompile(`\bsk_(?:live|test)_[A-Za-z0-9]{8,}`),
	regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{20,}`),
	regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
	regexp.MustCompile(`\bxox[abpr]-[A-Za-z0-9-]{10,}`),
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
	regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{8,}\.eyJ[A-Za-z0-9_-]{8,}(?:\.[A-Za-z0-9_-]+)?`),
}

// Scrubber masks token shapes plus any user patterns.
type Scrubber struct {
	patterns []*regexp.Regexp
}

// NewScrubber returns a Scrubber for the built-in token shapes and extra.
func NewScrubber(extra ...*regexp.Regexp) *Scrubber {
	patterns := make([]*regexp.Regexp, 0, len(tokenShapes)+len(extra))
	patterns = append(patterns, tokenShapes...)
	patterns = append(patterns, extra...)
	return &Scrubber{patterns: patterns}
}

// Load builds a Scrubber from the ignore file at path. A missing file adds
// no patterns.
func Load(path string) (*Scrubber, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return NewScrubber(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var extra []*regexp.Regexp
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			return nil, err
		}
		extra = append(extra, re)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NewScrubber(extra...), nil
}

// Scrub returns line with every match masked and how many were masked.
func (s *Scrubber) Scrub(line string) (string, int) {
	n := 0
	for _, re := range s.patterns {
		line = re.ReplaceAllStringFunc(line, func(string) string {
			n++
			return Mask
		})
	}
	return line, n
}
