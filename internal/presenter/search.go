package presenter

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
)

// MinQueryLength is the shortest trimmed input that triggers a search.
const MinQueryLength = 2

const noResultsMessage = "No products found"

type SearchState string

const (
	StateIdle      SearchState = "idle"
	StateQuerying  SearchState = "querying"
	StateDismissed SearchState = "dismissed"
)

type Searcher interface {
	Search(query string) []domain.Product
}

type SearchResult struct {
	ID       int64  `json:"id"`
	Href     string `json:"href"`
	Image    string `json:"image"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

type SearchView struct {
	State     SearchState    `json:"state"`
	Visible   bool           `json:"visible"`
	Query     string         `json:"query"`
	NoResults bool           `json:"noResults"`
	Message   string         `json:"message,omitempty"`
	Results   []SearchResult `json:"results"`
}

// SearchPresenter drives the search dropdown. Every input re-queries
// synchronously; there is no debounce and no result cache.
type SearchPresenter struct {
	searcher Searcher

	mu      sync.Mutex
	state   SearchState
	text    string
	results []SearchResult
}

func NewSearchPresenter(searcher Searcher) *SearchPresenter {
	return &SearchPresenter{
		searcher: searcher,
		state:    StateIdle,
		results:  []SearchResult{},
	}
}

// Input handles a change of the search box text.
func (p *SearchPresenter) Input(text string) SearchView {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.text = text
	if !queryable(text) {
		p.state = StateIdle
		p.results = []SearchResult{}
		return p.view()
	}
	p.query()
	return p.view()
}

// Focus re-issues the query against the live catalog when the box already
// holds enough text.
func (p *SearchPresenter) Focus() SearchView {
	p.mu.Lock()
	defer p.mu.Unlock()

	if queryable(p.text) {
		p.query()
	}
	return p.view()
}

// OutsideClick hides a visible dropdown after an interaction outside the
// search box and its results.
func (p *SearchPresenter) OutsideClick() SearchView {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateQuerying {
		p.state = StateDismissed
	}
	return p.view()
}

func (p *SearchPresenter) View() SearchView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}

func (p *SearchPresenter) query() {
	products := p.searcher.Search(strings.TrimSpace(p.text))
	results := make([]SearchResult, 0, len(products))
	for _, product := range products {
		results = append(results, SearchResult{
			ID:       product.ID,
			Href:     fmt.Sprintf("product-details.html?id=%d", product.ID),
			Image:    product.Thumbnail(),
			Name:     product.Name,
			Price:    Money(product.Price),
			Category: product.Category,
		})
	}
	p.results = results
	p.state = StateQuerying
}

func (p *SearchPresenter) view() SearchView {
	v := SearchView{
		State:   p.state,
		Visible: p.state == StateQuerying,
		Query:   strings.TrimSpace(p.text),
		Results: []SearchResult{},
	}
	if !v.Visible {
		return v
	}
	if len(p.results) == 0 {
		v.NoResults = true
		v.Message = noResultsMessage
		return v
	}
	v.Results = append(v.Results, p.results...)
	return v
}

func queryable(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinQueryLength
}
