package parser

import (
	"regexp"
	"sort"
	"strings"

	"solparse/ast"
	"solparse/diag"

	"github.com/Masterminds/semver/v3"
)

var spdxPattern = regexp.MustCompile(`SPDX-License-Identifier:\s*([A-Za-z0-9 ()+.\-]+)`)

// scanLicense implements §4.10: search the complement of every parsed
// node's span for an SPDX identifier comment.
func (p *Parser) scanLicense() string {
	gaps := p.unparsedGaps()
	var matches []string
	for _, gap := range gaps {
		text := p.source[gap.Start:gap.End]
		for _, m := range spdxPattern.FindAllStringSubmatch(text, -1) {
			matches = append(matches, strings.TrimSpace(m[1]))
		}
	}
	switch len(matches) {
	case 0:
		p.warning(diag.LicenseMissing, ast.Span{Start: 0, End: 0, Source: p.source}, "no SPDX license identifier found")
		return ""
	case 1:
		return matches[0]
	default:
		p.errorDiag(diag.LicenseMultiple, ast.Span{Start: 0, End: 0, Source: p.source}, "multiple SPDX license identifiers found")
		return matches[0]
	}
}

func (p *Parser) unparsedGaps() []ast.Span {
	spans := append([]ast.Span(nil), p.parsedSpans...)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var gaps []ast.Span
	cursor := 0
	for _, s := range spans {
		if s.Start > cursor {
			gaps = append(gaps, ast.Span{Start: cursor, End: s.Start, Source: p.source})
		}
		if s.End > cursor {
			cursor = s.End
		}
	}
	if cursor < len(p.source) {
		gaps = append(gaps, ast.Span{Start: cursor, End: len(p.source), Source: p.source})
	}
	return gaps
}

// matchVersion implements the version-pragma interpreter named in
// §4.10: constraint is the raw source text of the version constraint
// following the "solidity" literal.
func (p *Parser) matchVersion(constraint string, span ast.Span) {
	constraint = strings.TrimSpace(constraint)
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		p.errorDiag(diag.PragmaIllegalToken, span, "malformed version constraint: "+err.Error())
		return
	}
	v, err := semver.NewVersion(compilerVersion)
	if err != nil {
		panic("parser: invalid built-in compiler version " + compilerVersion)
	}
	if c.Check(v) {
		return
	}
	if p.cfg.ErrorRecovery {
		p.errorDiag(diag.VersionMismatch, span, "source requires a different compiler version")
		return
	}
	p.fatal(diag.VersionMismatch, span, "source requires a different compiler version")
}
