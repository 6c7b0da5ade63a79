package middleware

import (
	"context"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/uow"
)

// OutboxFlush flushes the outbox of the unit bound to ctx once the command succeeded. It
// must run inside Transaction.
func OutboxFlush() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			res, err := next.Dispatch(ctx, cmd)
			if err != nil {
				return nil, err
			}
			unit, ok := uow.FromContext(ctx)
			if !ok {
				return nil, uow.ErrUnitOfWorkMissing
			}
			if box := unit.Outbox(); box != nil {
				if err := box.Flush(ctx); err != nil {
					return nil, err
				}
			}
			return res, nil
		})
	}
}
