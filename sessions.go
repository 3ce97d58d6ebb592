package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

const sessionHeader = "x-session-id"

// session pairs a cart store with the lock that keeps it single-writer.
type session struct {
	mu    sync.Mutex
	store *logic.Store
}

// sessionRegistry owns one store per client session. It holds at most
// maxSessions carts; the least recently used one is dropped to make room.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions *lru.Cache
	pricing  logic.Pricing
	logger   *zap.Logger
}

func newSessionRegistry(pricing logic.Pricing, maxSessions int, logger *zap.Logger) (*sessionRegistry, error) {
	r := &sessionRegistry{
		pricing: pricing,
		logger:  logger,
	}
	cache, err := lru.NewWithEvict(maxSessions, r.evicted)
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	r.sessions = cache
	return r, nil
}

func (r *sessionRegistry) evicted(key, _ interface{}) {
	r.logger.Info("session evicted", zap.Any("session_id", key))
}

func (r *sessionRegistry) get(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.sessions.Get(id); ok {
		return v.(*session)
	}

	root := logic.CartRoot(id)
	s := &session{
		store: logic.NewStore(r.pricing).
			WithLogger(r.logger.With(zap.Stringer("cart_id", root))),
	}
	r.sessions.Add(id, s)
	r.logger.Info("session opened", zap.String("session_id", id), zap.Stringer("cart_id", root))
	return s
}

func (r *sessionRegistry) len() int {
	return r.sessions.Len()
}

func sessionIDFrom(ctx context.Context) (string, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	if ids := md.Get(sessionHeader); len(ids) > 0 && ids[0] != "" {
		return ids[0], nil
	}
	return "", status.Error(codes.InvalidArgument, logic.ErrMsgSessionRequired)
}

// sessionlessMethods can be called without a session header.
var sessionlessMethods = map[string]bool{
	fullMethod("ListMenu"): true,
}

// sessionInterceptor serialises calls per session and hands the handler
// its store through the context.
func (s *server) sessionInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !isCartMethod(info.FullMethod) || sessionlessMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	id, err := sessionIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.get(id)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return handler(logic.NewContext(ctx, sess.store), req)
}

func isCartMethod(method string) bool {
	return strings.HasPrefix(method, "/"+cartServiceName+"/")
}
