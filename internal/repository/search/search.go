// Package search mirrors persisted product orders into a free-text index.
package search

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"crm-service/internal/domain"
	"crm-service/internal/pagination"
)

// ProductOrderSearchRepository is the search-index copy of the product order
// table. It receives every persisted order and answers query-string searches.
type ProductOrderSearchRepository interface {
	Save(ctx context.Context, order *domain.ProductOrder) error
	DeleteByID(ctx context.Context, id uint64) error
	Search(ctx context.Context, query string, pageable pagination.Pageable) (pagination.Page[domain.ProductOrder], error)
}

type document struct {
	order  domain.ProductOrder
	fields map[string]string
}

func encodeDocument(order *domain.ProductOrder) ([]byte, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode product order %d: %w", order.ID, err)
	}
	return data, nil
}

func decodeDocument(data []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc.order); err != nil {
		return document{}, fmt.Errorf("decode product order: %w", err)
	}
	if doc.order.Customer != nil {
		doc.order.CustomerID = doc.order.Customer.ID
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return document{}, fmt.Errorf("decode product order fields: %w", err)
	}
	doc.fields = make(map[string]string)
	flatten("", raw, doc.fields)
	return doc, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, child, out)
		}
	case []any:
		for _, child := range val {
			flatten(prefix, child, out)
		}
	case nil:
	case string:
		out[prefix] = val
	case json.Number:
		out[prefix] = val.String()
	case bool:
		out[prefix] = strconv.FormatBool(val)
	default:
		out[prefix] = fmt.Sprint(val)
	}
}

// searchDocuments filters, orders and pages documents. Without a sort the
// result is ordered by id.
func searchDocuments(docs []document, query string, pageable pagination.Pageable) pagination.Page[domain.ProductOrder] {
	q := ParseQuery(query)

	hits := make([]document, 0, len(docs))
	for _, d := range docs {
		if q.Matches(d.fields) {
			hits = append(hits, d)
		}
	}

	slices.SortStableFunc(hits, func(a, b document) int {
		for _, o := range pageable.Sort {
			r := compareField(a.fields[o.Property], b.fields[o.Property])
			if o.IsDesc() {
				r = -r
			}
			if r != 0 {
				return r
			}
		}
		return cmp.Compare(a.order.ID, b.order.ID)
	})

	orders := make([]domain.ProductOrder, 0, len(hits))
	for _, d := range hits {
		orders = append(orders, d.order)
	}
	return pagination.Slice(orders, pageable)
}

func compareField(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(a, b)
}
