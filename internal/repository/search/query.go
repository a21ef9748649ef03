package search

import (
	"strings"
	"unicode"
)

type occur int

const (
	should occur = iota
	must
	mustNot
)

type clause struct {
	field  string
	term   string
	prefix bool
	occur  occur
}

// Query is a parsed query string. It understands a subset of the Lucene
// syntax: field:value, "phrases", trailing * wildcards, +/- and NOT
// modifiers, AND/OR operators. OR is the default operator.
type Query struct {
	raw      string
	clauses  []clause
	matchAll bool
}

func ParseQuery(raw string) Query {
	q := Query{raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "*" || trimmed == "*:*" {
		q.matchAll = true
		return q
	}

	var (
		pendingAnd bool
		negateNext bool
	)
	for _, tok := range tokenize(trimmed) {
		switch tok {
		case "AND", "&&":
			if n := len(q.clauses); n > 0 && q.clauses[n-1].occur == should {
				q.clauses[n-1].occur = must
			}
			pendingAnd = true
			continue
		case "OR", "||":
			continue
		case "NOT", "!":
			negateNext = true
			continue
		}

		c, ok := parseClause(tok)
		if !ok {
			continue
		}
		switch {
		case negateNext:
			c.occur = mustNot
		case pendingAnd && c.occur == should:
			c.occur = must
		}
		negateNext = false
		pendingAnd = false
		q.clauses = append(q.clauses, c)
	}

	if len(q.clauses) == 0 {
		q.matchAll = true
	}
	return q
}

func (q Query) String() string {
	return q.raw
}

// Matches evaluates the query against a flattened document.
func (q Query) Matches(fields map[string]string) bool {
	if q.matchAll {
		return true
	}

	var hasMust, hasShould, shouldHit bool
	for _, c := range q.clauses {
		hit := c.matches(fields)
		switch c.occur {
		case must:
			if !hit {
				return false
			}
			hasMust = true
		case mustNot:
			if hit {
				return false
			}
		default:
			hasShould = true
			shouldHit = shouldHit || hit
		}
	}
	if hasShould && !hasMust {
		return shouldHit
	}
	return true
}

func (c clause) matches(fields map[string]string) bool {
	if c.field != "" {
		value, ok := fields[c.field]
		if !ok {
			return false
		}
		if c.term == "" {
			return true
		}
		return c.matchValue(value)
	}
	for _, value := range fields {
		if strings.Contains(strings.ToLower(value), c.term) {
			return true
		}
	}
	return false
}

func (c clause) matchValue(value string) bool {
	value = strings.ToLower(value)
	if c.prefix {
		if strings.HasPrefix(value, c.term) {
			return true
		}
		for _, w := range strings.FieldsFunc(value, isSeparator) {
			if strings.HasPrefix(w, c.term) {
				return true
			}
		}
		return false
	}
	if value == c.term {
		return true
	}
	if strings.ContainsFunc(c.term, isSeparator) {
		return strings.Contains(value, c.term)
	}
	for _, w := range strings.FieldsFunc(value, isSeparator) {
		if w == c.term {
			return true
		}
	}
	return false
}

func parseClause(tok string) (clause, bool) {
	c := clause{occur: should}
	switch tok[0] {
	case '+':
		c.occur = must
		tok = tok[1:]
	case '-':
		c.occur = mustNot
		tok = tok[1:]
	}
	if tok == "" {
		return clause{}, false
	}

	if !strings.HasPrefix(tok, `"`) {
		if i := strings.IndexByte(tok, ':'); i > 0 {
			c.field = tok[:i]
			tok = tok[i+1:]
		}
	}

	quoted := len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`)
	if quoted {
		tok = tok[1 : len(tok)-1]
	} else if tok == "*" {
		tok = ""
	} else if strings.HasSuffix(tok, "*") {
		c.prefix = true
		tok = strings.TrimSuffix(tok, "*")
	}
	c.term = strings.ToLower(tok)

	if c.field == "" && c.term == "" {
		return clause{}, false
	}
	return c, true
}

// tokenize splits on whitespace, keeping quoted sections together.
func tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
		inQuote bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case unicode.IsSpace(r) && !inQuote:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == ',' || r == '@'
}
