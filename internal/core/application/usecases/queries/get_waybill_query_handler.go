package queries

import (
	"context"
	"errors"
	"fmt"

	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"
)

// GetWaybillQueryHandler serves the archived waybill of an item. Items sent
// while the archive was unreachable have no stored copy; their waybill is
// rendered from the item row instead.
type GetWaybillQueryHandler struct {
	items       ItemReader
	archive     ports.WaybillArchive
	transitDays int
}

func NewGetWaybillQueryHandler(items ItemReader, archive ports.WaybillArchive, transitDays int) GetWaybillQueryHandler {
	return GetWaybillQueryHandler{
		items:       items,
		archive:     archive,
		transitDays: transitDays,
	}
}

func (h GetWaybillQueryHandler) Handle(ctx context.Context, query GetWaybillQuery) (ports.Waybill, error) {
	if err := query.Validate(); err != nil {
		return ports.Waybill{}, err
	}

	it, err := h.items.Get(ctx, query.ItemID())
	if err != nil {
		return ports.Waybill{}, err
	}

	if query.CallerRole() != user.Administrator && !it.IsVisibleTo(query.Caller()) {
		return ports.Waybill{}, errs.NewForbiddenError(query.Caller(), fmt.Sprintf("read the waybill of item %d", it.ID()))
	}

	waybill, err := h.archive.Load(ctx, it.ID())
	switch {
	case err == nil:
		return waybill, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return ports.WaybillOf(it, h.transitDays), nil
	default:
		return ports.Waybill{}, err
	}
}
