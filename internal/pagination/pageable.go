// Package pagination implements page requests and page results shared by the
// repositories, the search index and the REST layer.
package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 2000
)

var ErrInvalidSortProperty = errors.New("invalid sort property")

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Order struct {
	Property  string
	Direction Direction
}

func (o Order) IsDesc() bool {
	return o.Direction == Desc
}

func (o Order) String() string {
	return o.Property + "," + strings.ToLower(string(o.Direction))
}

// Pageable is a zero based page request.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func Of(page, size int, sort ...Order) Pageable {
	return Pageable{Page: page, Size: size, Sort: sort}
}

func Unpaged() Pageable {
	return Pageable{Page: 0, Size: MaxPageSize}
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

func (p Pageable) Next() Pageable {
	return Pageable{Page: p.Page + 1, Size: p.Size, Sort: p.Sort}
}

// maxPage keeps Offset()+size within int for the given page size.
func maxPage(size int) int {
	return math.MaxInt/size - 1
}

// Parse reads page, size and sort query parameters. sort may repeat and takes
// the form "prop[,prop...][,asc|desc]". When sortable is non-empty any other
// property is rejected with ErrInvalidSortProperty. Pages past the last
// representable offset are clamped and come back empty.
func Parse(values url.Values, sortable ...string) (Pageable, error) {
	p := Pageable{Page: 0, Size: DefaultPageSize}

	if raw := values.Get("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Size = min(n, MaxPageSize)
		}
	}
	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Page = min(n, maxPage(p.Size))
		}
	}

	allowed := make(map[string]struct{}, len(sortable))
	for _, s := range sortable {
		allowed[s] = struct{}{}
	}

	for _, raw := range values["sort"] {
		for _, o := range parseSort(raw) {
			if len(allowed) > 0 {
				if _, ok := allowed[o.Property]; !ok {
					return Pageable{}, fmt.Errorf("%w: %s", ErrInvalidSortProperty, o.Property)
				}
			}
			p.Sort = append(p.Sort, o)
		}
	}
	return p, nil
}

func parseSort(raw string) []Order {
	tokens := strings.Split(raw, ",")
	dir := Asc
	last := strings.TrimSpace(tokens[len(tokens)-1])
	switch strings.ToLower(last) {
	case "asc":
		tokens = tokens[:len(tokens)-1]
	case "desc":
		dir = Desc
		tokens = tokens[:len(tokens)-1]
	}

	var out []Order
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, Order{Property: t, Direction: dir})
	}
	return out
}
