package render

import (
	"net/url"
	"strconv"

	"petcare-web/internal/mutation"
)

// List es una región de la página con cero o más registros.
// Si Error != "" la región muestra el error; si no hay items, el empty-state.
type List[T any] struct {
	Items []T
	Error string
}

func NewList[T any](items []T, err error, fallback string) List[T] {
	if err != nil {
		return List[T]{Error: mutation.Message(err, fallback)}
	}
	return List[T]{Items: items}
}

func (l List[T]) Empty() bool { return len(l.Items) == 0 }

func (l List[T]) Len() int { return len(l.Items) }

// Region es una región de detalle (un objeto) con su propio error.
type Region[T any] struct {
	Value T
	Error string
}

func NewRegion[T any](v T, err error, fallback string) Region[T] {
	if err != nil {
		return Region[T]{Error: mutation.Message(err, fallback)}
	}
	return Region[T]{Value: v}
}

func (r Region[T]) OK() bool { return r.Error == "" }

// Pager es paginación por offset sin total:
// - Prev deshabilitado con skip 0
// - Next deshabilitado si vinieron menos de limit registros
type Pager struct {
	Skip  int
	Limit int
	Count int
	Path  string
	Query url.Values
}

func NewPager(path string, q url.Values, skip, limit, count int) Pager {
	if skip < 0 {
		skip = 0
	}
	return Pager{Skip: skip, Limit: limit, Count: count, Path: path, Query: q}
}

func (p Pager) HasPrev() bool { return p.Skip > 0 }

func (p Pager) HasNext() bool { return p.Limit > 0 && p.Count >= p.Limit }

func (p Pager) Page() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Skip/p.Limit + 1
}

func (p Pager) PrevURL() string {
	prev := p.Skip - p.Limit
	if prev < 0 {
		prev = 0
	}
	return p.url(prev)
}

func (p Pager) NextURL() string { return p.url(p.Skip + p.Limit) }

func (p Pager) url(skip int) string {
	q := url.Values{}
	for k, v := range p.Query {
		if k == "skip" || k == "error" || k == "notice" {
			continue
		}
		q[k] = v
	}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if len(q) == 0 {
		return p.Path
	}
	return p.Path + "?" + q.Encode()
}

// ParseSkip lee ?skip= (>= 0).
func ParseSkip(q url.Values) int {
	n, err := strconv.Atoi(q.Get("skip"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
