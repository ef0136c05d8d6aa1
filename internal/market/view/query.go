package view

import "stocktracker/pkg/market"

// Query holds the dashboard controls. Changing the filter or sort returns to page 1.
type Query struct {
	Filter market.Filter  `json:"filter"`
	Sort   market.SortKey `json:"sort"`
	Page   int            `json:"page"`
}

// Page is one rendered page of the derived view.
type Page struct {
	Items      []market.StockRecord `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"totalPages"`
}

func NewQuery() Query {
	return Query{Filter: market.DefaultFilter, Sort: market.DefaultSortKey, Page: 1}
}

func (q *Query) SetFilter(f market.Filter) {
	q.Filter = f
	q.Page = 1
}

func (q *Query) SetSort(k market.SortKey) {
	q.Sort = k
	q.Page = 1
}

func (q *Query) SetPage(p int) {
	if p < 1 {
		p = 1
	}
	q.Page = p
}

// Apply derives the view for the current controls.
func (q Query) Apply(records []market.StockRecord, watchlist map[string]struct{}) Page {
	filter := q.Filter
	if filter == "" {
		filter = market.DefaultFilter
	}
	key := q.Sort
	if key == "" {
		key = market.DefaultSortKey
	}
	page := max(q.Page, 1)

	derived := Derive(records, filter, key, watchlist)
	return Page{
		Items:      Paginate(derived, page, PageSize),
		Page:       page,
		PageSize:   PageSize,
		Total:      len(derived),
		TotalPages: PageCount(len(derived), PageSize),
	}
}
