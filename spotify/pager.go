package spotify

import "context"

// FetchPage returns one page of items starting at offset, reporting whether
// more pages remain after it.
type FetchPage[T any] func(ctx context.Context, limit, offset int) (items []T, more bool, err error)

// Pager is a restartable lazy sequence over a paginated listing. Callers
// never see page tokens or offsets; they pull pages until exhaustion or
// drain the whole listing in one call.
type Pager[T any] struct {
	fetch  FetchPage[T]
	offset int
	done   bool
}

// NewPager wraps a page-fetching function. Tests can supply their own.
func NewPager[T any](fetch FetchPage[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch}
}

// Next returns the next page. After the final page it reports more=false;
// further calls return an empty page.
func (p *Pager[T]) Next(ctx context.Context) (items []T, more bool, err error) {
	if p.done {
		return nil, false, nil
	}
	items, more, err = p.fetch(ctx, pageLimit, p.offset)
	if err != nil {
		return nil, false, err
	}
	p.offset += len(items)
	if !more || len(items) == 0 {
		p.done = true
	}
	return items, !p.done, nil
}

// Restart rewinds the pager to the first page.
func (p *Pager[T]) Restart() {
	p.offset = 0
	p.done = false
}

// Drain follows every remaining page and returns the items in order. On any
// page error nothing is returned: a listing is all-or-nothing.
func (p *Pager[T]) Drain(ctx context.Context) ([]T, error) {
	var all []T
	for {
		items, more, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if !more {
			return all, nil
		}
	}
}
