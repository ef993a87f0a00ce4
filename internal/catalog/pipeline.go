// Package catalog drives the product grid: it translates the search
// term, category filter and sort key into the right listing request,
// tracks pagination state, and falls back to client-side sorting and
// slicing when the server returns an unpaginated list.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/seyman123/dreamshops-client/internal/domain"
	"github.com/seyman123/dreamshops-client/internal/remote"
)

// RemoteCatalog is the slice of the remote client the pipeline needs.
type RemoteCatalog interface {
	ListProducts(ctx context.Context, q remote.ProductQuery) (*remote.ProductPage, error)
}

// ImagePreloader warms the image cache for a fetched page.
type ImagePreloader interface {
	PreloadImage(ctx context.Context, imageURL string) error
}

// PaginationState is the grid's pagination view. Pages are 0-based.
type PaginationState struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	PageSize      int   `json:"pageSize"`
}

const defaultPageSize = 12

type Pipeline struct {
	remote RemoteCatalog
	images ImagePreloader

	sfg singleflight.Group

	mu       sync.Mutex
	term     string
	category string
	sortKey  SortKey
	pageSize int

	page          int
	totalPages    int
	totalElements int64
	products      []domain.Product

	// full result set, held only on the client-side fallback path so
	// page changes slice locally without another request
	all []domain.Product
}

func NewPipeline(remote RemoteCatalog, images ImagePreloader, pageSize int) *Pipeline {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Pipeline{
		remote:   remote,
		images:   images,
		sortKey:  SortName,
		pageSize: pageSize,
	}
}

// SetTerm changes the search term and refetches from page 0.
func (p *Pipeline) SetTerm(ctx context.Context, term string) error {
	p.mu.Lock()
	p.term = term
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// SetCategory changes the category filter and refetches from page 0.
func (p *Pipeline) SetCategory(ctx context.Context, category string) error {
	p.mu.Lock()
	p.category = category
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// SetSort changes the sort key and refetches from page 0.
func (p *Pipeline) SetSort(ctx context.Context, key SortKey) error {
	p.mu.Lock()
	p.sortKey = key
	p.mu.Unlock()
	return p.Refresh(ctx)
}

// Query applies all grid inputs in one step. Any change of term,
// category or sort refetches from page 0; otherwise the requested page
// is fetched.
func (p *Pipeline) Query(ctx context.Context, term, category string, key SortKey, page int) error {
	if key == "" {
		key = SortName
	}
	p.mu.Lock()
	changed := term != p.term || category != p.category || key != p.sortKey
	p.term, p.category, p.sortKey = term, category, key
	if changed {
		p.all = nil
	}
	p.mu.Unlock()
	if changed {
		return p.Fetch(ctx, 0)
	}
	return p.Fetch(ctx, page)
}

// Refresh drops any held fallback set and fetches page 0 with the
// current inputs.
func (p *Pipeline) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.all = nil
	p.mu.Unlock()
	return p.Fetch(ctx, 0)
}

// Fetch loads the given page. On the fallback path the page is sliced
// from the in-memory set without a network call; otherwise the server is
// asked for that page.
func (p *Pipeline) Fetch(ctx context.Context, page int) error {
	if page < 0 {
		page = 0
	}

	p.mu.Lock()
	if p.all != nil {
		p.sliceLocked(page)
		p.mu.Unlock()
		return nil
	}
	q := remote.ProductQuery{
		Term:     p.term,
		Category: p.category,
		Page:     page,
		Size:     p.pageSize,
		Sort:     p.sortKey.RequestParam(),
	}
	p.mu.Unlock()

	// identical in-flight fetches (double mount, rapid pager clicks on
	// the same page) collapse into one request
	key := fmt.Sprintf("%s|%s|%s|%d|%d", q.Term, q.Category, q.Sort, q.Page, q.Size)
	result, err, _ := p.sfg.Do(key, func() (any, error) {
		return p.remote.ListProducts(ctx, q)
	})
	if err != nil {
		return err
	}
	fetched := result.(*remote.ProductPage)

	p.mu.Lock()
	if fetched.Page != nil {
		// server-side pagination: its metadata is the source of truth
		p.products = fetched.Products
		p.page = fetched.Page.Number
		p.totalPages = fetched.Page.TotalPages
		p.totalElements = fetched.Page.TotalElements
		p.all = nil
	} else {
		// unpaginated array: sort the full set client-side, then slice
		p.all = append([]domain.Product(nil), fetched.Products...)
		SortProducts(p.all, p.sortKey)
		p.totalElements = int64(len(p.all))
		p.totalPages = (len(p.all) + p.pageSize - 1) / p.pageSize
		p.sliceLocked(0)
	}
	products := p.products
	p.mu.Unlock()

	p.preload(products)
	return nil
}

// Products returns a copy of the current page.
func (p *Pipeline) Products() []domain.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Product(nil), p.products...)
}

func (p *Pipeline) State() PaginationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PaginationState{
		CurrentPage:   p.page,
		TotalPages:    p.totalPages,
		TotalElements: p.totalElements,
		PageSize:      p.pageSize,
	}
}

func (p *Pipeline) sliceLocked(page int) {
	if p.totalPages > 0 && page >= p.totalPages {
		page = p.totalPages - 1
	}
	start := page * p.pageSize
	if start > len(p.all) {
		start = len(p.all)
	}
	end := start + p.pageSize
	if end > len(p.all) {
		end = len(p.all)
	}
	p.page = page
	p.products = p.all[start:end]
}

// preload warms the first image of every product on the page.
// Fire-and-forget: failures are swallowed and nothing waits on it.
func (p *Pipeline) preload(products []domain.Product) {
	if p.images == nil {
		return
	}
	for _, product := range products {
		if len(product.Images) == 0 {
			continue
		}
		go func(url string) {
			_ = p.images.PreloadImage(context.Background(), url)
		}(product.Images[0])
	}
}
