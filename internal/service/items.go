package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/loofah/internal/domain"
)

// DefaultPageSize is used when a query does not set one
const DefaultPageSize = 20

// ItemService lists and fetches items. Pagination and search are entirely
// server-side; results are never sliced or filtered locally.
type ItemService struct {
	api    domain.Requester
	logger *slog.Logger
}

// NewItemService creates a new item service
func NewItemService(api domain.Requester, logger *slog.Logger) *ItemService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItemService{api: api, logger: logger}
}

// NormalizeQuery clamps page and page size to valid values
func NormalizeQuery(q domain.ListQuery) domain.ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

// ListParams builds the request parameters for q. The type parameter is
// omitted for the "all" category and search only appears when non-blank.
func ListParams(q domain.ListQuery) (url.Values, error) {
	q = NormalizeQuery(q)

	params := url.Values{}
	typ, ok, err := q.Category.QueryValue()
	if err != nil {
		return nil, err
	}
	if ok {
		params.Set("type", typ)
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.NewOnly {
		params.Set("is_new", "true")
	}
	return params, nil
}

// ListItems returns one page of items
func (s *ItemService) ListItems(ctx context.Context, q domain.ListQuery) (domain.ListResult, error) {
	q = NormalizeQuery(q)
	params, err := ListParams(q)
	if err != nil {
		return domain.ListResult{}, err
	}

	var result domain.ListResult
	if err := s.api.Send(ctx, http.MethodGet, "/items", params, &result); err != nil {
		return domain.ListResult{}, err
	}

	if result.Total < 0 {
		return domain.ListResult{}, &domain.RequestError{
			Op: "GET /items", Kind: domain.KindProtocol,
			Err: fmt.Errorf("negative total %d", result.Total),
		}
	}
	if result.Page == 0 {
		result.Page = q.Page
	}
	if result.PageSize == 0 {
		result.PageSize = q.PageSize
	}
	if result.Items == nil {
		result.Items = []domain.Item{}
	}

	s.logger.Debug("listed items",
		"category", string(q.Category),
		"page", result.Page,
		"count", len(result.Items),
		"total", result.Total,
	)
	return result, nil
}

// ListAll walks every page for q, starting at page 1. onProgress may be nil.
func (s *ItemService) ListAll(ctx context.Context, q domain.ListQuery, onProgress func(loaded, total int)) ([]domain.Item, error) {
	q = NormalizeQuery(q)
	return fetchAll(ctx, func(ctx context.Context, page, limit int) ([]domain.Item, int, error) {
		q.Page, q.PageSize = page, limit
		res, err := s.ListItems(ctx, q)
		if err != nil {
			return nil, 0, err
		}
		return res.Items, res.Total, nil
	}, q.PageSize, onProgress)
}

// GetItem returns a single item by ID
func (s *ItemService) GetItem(ctx context.Context, id string) (domain.Item, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Item{}, domain.ErrNotFound
	}

	var item domain.Item
	if err := s.api.Send(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, &item); err != nil {
		return domain.Item{}, err
	}
	if item.ID == "" {
		item.ID = id
	}
	return item, nil
}

var _ domain.ItemRepository = (*ItemService)(nil)
