package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type Page[T any] struct {
	Content  []T
	Pageable Pageable
	Total    int64
}

func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Pageable: pageable, Total: total}
}

func (p Page[T]) TotalPages() int {
	if p.Pageable.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Pageable.Size) - 1) / int64(p.Pageable.Size))
}

func (p Page[T]) HasNext() bool {
	return p.Pageable.Page+1 < p.TotalPages()
}

// Slice pages an already sorted in-memory result.
func Slice[T any](all []T, pageable Pageable) Page[T] {
	total := int64(len(all))
	start := pageable.Offset()
	if start < 0 || start >= len(all) || pageable.Size <= 0 {
		return NewPage[T](nil, pageable, total)
	}
	end := len(all)
	if pageable.Size < end-start {
		end = start + pageable.Size
	}
	return NewPage(append([]T(nil), all[start:end]...), pageable, total)
}

// LinkHeader renders the RFC 5988 Link header for a page, keeping every query
// parameter of base except page and size.
func LinkHeader[T any](base *url.URL, page Page[T]) string {
	number := page.Pageable.Page
	size := page.Pageable.Size
	totalPages := page.TotalPages()

	var links []string
	if number+1 < totalPages {
		links = append(links, link(base, number+1, size, "next"))
	}
	if number > 0 {
		links = append(links, link(base, number-1, size, "prev"))
	}
	lastPage := 0
	if totalPages > 0 {
		lastPage = totalPages - 1
	}
	links = append(links, link(base, lastPage, size, "last"), link(base, 0, size, "first"))
	return strings.Join(links, ",")
}

func link(base *url.URL, page, size int, rel string) string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel)
}
