package main

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/catalog"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/coupon"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

type server struct {
	catalog  *catalog.Catalog
	coupons  *coupon.Book
	sessions *sessionRegistry
	logger   *zap.Logger
}

func newServer(cat *catalog.Catalog, coupons *coupon.Book, pricing logic.Pricing, maxSessions int, logger *zap.Logger) (*server, error) {
	sessions, err := newSessionRegistry(pricing, maxSessions, logger)
	if err != nil {
		return nil, err
	}
	return &server{
		catalog:  cat,
		coupons:  coupons,
		sessions: sessions,
		logger:   logger,
	}, nil
}

// newGRPCServer wires the cart service and health checks.
func newGRPCServer(s *server) *grpc.Server {
	gs := grpc.NewServer(grpc.UnaryInterceptor(s.sessionInterceptor))
	gs.RegisterService(&cartServiceDesc, s)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(gs, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(cartServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return gs
}

func (s *server) GetCart(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}
	return cartResponse(store.Snapshot(), nil)
}

func (s *server) AddLine(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}

	r, err := decodeAddLine(s.catalog, req)
	if err != nil {
		return nil, mapError(err)
	}
	s.logger.Info("adding line",
		zap.String("menu_item_id", r.item.ID),
		zap.Int("quantity", r.quantity),
		zap.String("portion", string(r.portion)),
		zap.Int("addons", len(r.addons)),
	)

	lineID, ok := store.AddLine(r.item, r.quantity, r.portion, r.spice, r.addons, r.instructions)
	if !ok {
		return nil, status.Error(codes.FailedPrecondition, logic.ErrMsgMenuItemUnavail)
	}
	return cartResponse(store.Snapshot(), map[string]interface{}{"line_id": lineID})
}

func (s *server) RemoveLine(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}

	lineID, err := decodeLineID(req)
	if err != nil {
		return nil, mapError(err)
	}
	s.logger.Info("removing line", zap.String("line_id", lineID))

	store.RemoveLine(lineID)
	return cartResponse(store.Snapshot(), nil)
}

func (s *server) UpdateQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}

	lineID, quantity, err := decodeQuantityUpdate(req)
	if err != nil {
		return nil, mapError(err)
	}
	s.logger.Info("updating quantity", zap.String("line_id", lineID), zap.Int("new_quantity", quantity))

	store.UpdateQuantity(lineID, quantity)
	return cartResponse(store.Snapshot(), nil)
}

func (s *server) ClearCart(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("clearing cart")

	store.ClearCart()
	return cartResponse(store.Snapshot(), nil)
}

func (s *server) ApplyCoupon(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}

	code, discount, err := s.coupons.Redeem(stringField(req, "code"), store.Cart())
	if err != nil {
		return nil, mapError(err)
	}
	s.logger.Info("applying coupon", zap.String("code", code), zap.Int64("discount", discount))

	store.ApplyCoupon(code, discount)
	return cartResponse(store.Snapshot(), nil)
}

func (s *server) RemoveCoupon(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("removing coupon")

	store.RemoveCoupon()
	return cartResponse(store.Snapshot(), nil)
}

func (s *server) ListMenu(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	items := s.catalog.Items()
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, menuItemFields(item))
	}
	return toStruct(map[string]interface{}{"items": out})
}

// Watch streams the session's cart after every change, starting with the
// current state. Updates that arrive faster than the client reads are
// coalesced so it always ends on the latest cart.
func (s *server) Watch(_ *structpb.Struct, stream grpc.ServerStream) error {
	ctx := stream.Context()
	id, err := sessionIDFrom(ctx)
	if err != nil {
		return err
	}
	sess := s.sessions.get(id)

	updates := make(chan logic.Snapshot, 1)
	sess.mu.Lock()
	unsubscribe := sess.store.Subscribe(func(snap logic.Snapshot) {
		select {
		case updates <- snap:
		default:
			select {
			case <-updates:
			default:
			}
			updates <- snap
		}
	})
	current := sess.store.Snapshot()
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		unsubscribe()
		sess.mu.Unlock()
	}()

	s.logger.Info("watching cart", zap.String("session_id", id))

	send := func(snap logic.Snapshot) error {
		extra := map[string]interface{}{}
		if snap.Action != 0 {
			extra["action"] = snap.Action.String()
		}
		msg, err := cartResponse(snap, extra)
		if err != nil {
			return err
		}
		return stream.SendMsg(msg)
	}

	if err := send(current); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-updates:
			if err := send(snap); err != nil {
				return err
			}
		}
	}
}

// storeFrom returns the session store the interceptor attached.
func storeFrom(ctx context.Context) (*logic.Store, error) {
	store, err := logic.FromContext(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return store, nil
}

var grpcCodes = map[logic.StatusCode]codes.Code{
	logic.StatusInvalidArgument:    codes.InvalidArgument,
	logic.StatusFailedPrecondition: codes.FailedPrecondition,
}

// mapError converts cart errors, wrapped or not, into gRPC statuses.
// Statuses pass through; anything else is internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *logic.CommandError
	if errors.As(err, &cmdErr) && cmdErr != nil {
		if code, ok := grpcCodes[cmdErr.Code]; ok {
			return status.Error(code, cmdErr.Message)
		}
	}
	if errors.Is(err, logic.ErrNoStore) {
		return status.Error(codes.Internal, "no cart session attached to request")
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "internal error: %v", err)
}
