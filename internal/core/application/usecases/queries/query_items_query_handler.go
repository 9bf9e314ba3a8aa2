package queries

import (
	"context"

	"courier/internal/core/domain/model/item"
)

// ItemReader is the read side of the item repository.
type ItemReader interface {
	Get(ctx context.Context, id int64) (*item.Item, error)
	Find(ctx context.Context, filter item.Filter) ([]*item.Item, error)
}

type QueryItemsQueryHandler struct {
	items ItemReader
}

func NewQueryItemsQueryHandler(items ItemReader) QueryItemsQueryHandler {
	return QueryItemsQueryHandler{items: items}
}

// Handle returns the matching items ordered by id. No match is an empty
// slice; the count is its length.
func (h QueryItemsQueryHandler) Handle(ctx context.Context, query QueryItemsQuery) ([]ItemResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.items.Find(ctx, query.EffectiveFilter())
	if err != nil {
		return nil, err
	}

	out := make([]ItemResponse, 0, len(found))
	for _, it := range found {
		out = append(out, itemResponseOf(it))
	}
	return out, nil
}
