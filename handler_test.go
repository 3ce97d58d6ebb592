package main

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/catalog"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/coupon"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

type testClient struct {
	conn *grpc.ClientConn
	srv  *server
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	cat, err := catalog.Load("catalog/testdata/menu.yaml")
	require.NoError(t, err)
	coupons, err := coupon.NewBook(cat.Coupons())
	require.NoError(t, err)

	srv, err := newServer(cat, coupons, logic.DefaultPricing(), 100, zaptest.NewLogger(t))
	require.NoError(t, err)
	gs := newGRPCServer(srv)

	lis := bufconn.Listen(1 << 20)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &testClient{conn: conn, srv: srv}
}

func sessionCtx(t *testing.T, session string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	if session == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, sessionHeader, session)
}

func (c *testClient) call(t *testing.T, session, method string, req map[string]interface{}) (*structpb.Struct, error) {
	t.Helper()
	in, err := structpb.NewStruct(req)
	require.NoError(t, err)
	out := new(structpb.Struct)
	err = c.conn.Invoke(sessionCtx(t, session), fullMethod(method), in, out)
	return out, err
}

func (c *testClient) mustCall(t *testing.T, session, method string, req map[string]interface{}) *structpb.Struct {
	t.Helper()
	out, err := c.call(t, session, method, req)
	require.NoError(t, err)
	return out
}

func cartOf(resp *structpb.Struct) map[string]interface{} {
	return resp.GetFields()["cart"].GetStructValue().AsMap()
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, status.Code(err), err.Error())
}

func TestHealthCheck(t *testing.T) {
	c := newTestClient(t)

	resp, err := grpc_health_v1.NewHealthClient(c.conn).Check(sessionCtx(t, ""),
		&grpc_health_v1.HealthCheckRequest{Service: cartServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestListMenu_doesNotNeedSession(t *testing.T) {
	c := newTestClient(t)

	resp := c.mustCall(t, "", "ListMenu", nil)

	items := resp.GetFields()["items"].GetListValue().GetValues()
	require.Len(t, items, 3)
	first := items[0].GetStructValue().AsMap()
	assert.Equal(t, "butter-chicken", first["id"])
	assert.Equal(t, float64(180), first["half_price"])
	assert.Equal(t, true, first["available"])
	assert.Len(t, first["addons"], 2)
	assert.Equal(t, []interface{}{"dairy", "nuts"}, first["allergens"])
	translations := first["translations"].(map[string]interface{})
	assert.Equal(t, "ബട്ടർ ചിക്കൻ", translations["ml"].(map[string]interface{})["name"])
	chai := items[1].GetStructValue().AsMap()
	assert.Empty(t, chai["allergens"])
	assert.NotContains(t, chai, "translations")
	assert.Equal(t, 0, c.srv.sessions.len())
}

func TestCartMethods_requireSession(t *testing.T) {
	c := newTestClient(t)

	_, err := c.call(t, "", "GetCart", nil)
	assertCode(t, err, codes.InvalidArgument)
}

func TestGetCart_newSessionIsEmpty(t *testing.T) {
	c := newTestClient(t)

	cart := cartOf(c.mustCall(t, "s1", "GetCart", nil))

	assert.Empty(t, cart["lines"])
	assert.Equal(t, float64(0), cart["subtotal"])
	assert.Equal(t, float64(0), cart["delivery_fee"])
	assert.Equal(t, float64(0), cart["total"])
	assert.NotContains(t, cart, "coupon_code")
}

func TestAddLine_pricesLine(t *testing.T) {
	c := newTestClient(t)

	resp := c.mustCall(t, "s1", "AddLine", map[string]interface{}{
		"menu_item_id": "butter-chicken",
		"quantity":     2,
		"portion":      "HALF",
		"spice":        "hot",
		"addon_ids":    []interface{}{"extra-gravy"},
		"instructions": "no onions",
	})

	lineID := resp.GetFields()["line_id"].GetStringValue()
	assert.NotEmpty(t, lineID)

	cart := cartOf(resp)
	assert.Equal(t, float64(440), cart["subtotal"])
	assert.Equal(t, float64(22), cart["taxes"])
	assert.Equal(t, float64(40), cart["delivery_fee"])
	assert.Equal(t, float64(480), cart["total"])
	assert.Equal(t, float64(2), cart["item_count"])

	lines := cart["lines"].([]interface{})
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, lineID, line["id"])
	assert.Equal(t, "half", line["portion"])
	assert.Equal(t, "hot", line["spice"])
	assert.Equal(t, float64(180), line["unit_price"])
	assert.Equal(t, float64(440), line["item_total"])
	assert.Equal(t, "no onions", line["instructions"])
}

func TestAddLine_defaults(t *testing.T) {
	c := newTestClient(t)

	cart := cartOf(c.mustCall(t, "s1", "AddLine", map[string]interface{}{"menu_item_id": "butter-chicken"}))

	line := cart["lines"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(1), line["quantity"])
	assert.Equal(t, "full", line["portion"])
	assert.Equal(t, "medium", line["spice"])
	assert.NotContains(t, line, "instructions")
}

func TestAddLine_rejectsBadInput(t *testing.T) {
	c := newTestClient(t)

	tests := []struct {
		name string
		req  map[string]interface{}
		code codes.Code
	}{
		{"missing item", map[string]interface{}{}, codes.InvalidArgument},
		{"unknown item", map[string]interface{}{"menu_item_id": "tofu"}, codes.InvalidArgument},
		{"unavailable item", map[string]interface{}{"menu_item_id": "fish-moilee"}, codes.FailedPrecondition},
		{"zero quantity", map[string]interface{}{"menu_item_id": "masala-chai", "quantity": 0}, codes.InvalidArgument},
		{"fractional quantity", map[string]interface{}{"menu_item_id": "masala-chai", "quantity": 1.5}, codes.InvalidArgument},
		{"bad portion", map[string]interface{}{"menu_item_id": "masala-chai", "portion": "quarter"}, codes.InvalidArgument},
		{"bad spice", map[string]interface{}{"menu_item_id": "masala-chai", "spice": "volcanic"}, codes.InvalidArgument},
		{"unknown addon", map[string]interface{}{"menu_item_id": "masala-chai", "addon_ids": []interface{}{"extra-gravy"}}, codes.InvalidArgument},
		{"addon not a string", map[string]interface{}{"menu_item_id": "butter-chicken", "addon_ids": []interface{}{1}}, codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.call(t, "s1", "AddLine", tt.req)
			assertCode(t, err, tt.code)
		})
	}

	cart := cartOf(c.mustCall(t, "s1", "GetCart", nil))
	assert.Empty(t, cart["lines"])
}

func TestUpdateQuantity_andRemoveLine(t *testing.T) {
	c := newTestClient(t)

	first := c.mustCall(t, "s1", "AddLine", map[string]interface{}{"menu_item_id": "masala-chai"})
	firstID := first.GetFields()["line_id"].GetStringValue()
	second := c.mustCall(t, "s1", "AddLine", map[string]interface{}{"menu_item_id": "butter-chicken"})
	secondID := second.GetFields()["line_id"].GetStringValue()

	cart := cartOf(c.mustCall(t, "s1", "UpdateQuantity", map[string]interface{}{"line_id": firstID, "quantity": 3}))
	assert.Equal(t, float64(90+320), cart["subtotal"])
	assert.Equal(t, float64(4), cart["item_count"])

	cart = cartOf(c.mustCall(t, "s1", "UpdateQuantity", map[string]interface{}{"line_id": firstID, "quantity": 0}))
	assert.Len(t, cart["lines"], 1)

	cart = cartOf(c.mustCall(t, "s1", "RemoveLine", map[string]interface{}{"line_id": "nope"}))
	assert.Len(t, cart["lines"], 1)

	cart = cartOf(c.mustCall(t, "s1", "RemoveLine", map[string]interface{}{"line_id": secondID}))
	assert.Empty(t, cart["lines"])
	assert.Equal(t, float64(0), cart["delivery_fee"])

	_, err := c.call(t, "s1", "RemoveLine", nil)
	assertCode(t, err, codes.InvalidArgument)
	_, err = c.call(t, "s1", "UpdateQuantity", map[string]interface{}{"line_id": firstID})
	assertCode(t, err, codes.InvalidArgument)
}

func TestApplyCoupon(t *testing.T) {
	c := newTestClient(t)

	_, err := c.call(t, "s1", "ApplyCoupon", map[string]interface{}{"code": "SAVE50"})
	assertCode(t, err, codes.FailedPrecondition)

	c.mustCall(t, "s1", "AddLine", map[string]interface{}{"menu_item_id": "butter-chicken"})

	_, err = c.call(t, "s1", "ApplyCoupon", map[string]interface{}{"code": "BOGUS"})
	assertCode(t, err, codes.InvalidArgument)
	_, err = c.call(t, "s1", "ApplyCoupon", map[string]interface{}{"code": "feast20"})
	assertCode(t, err, codes.FailedPrecondition)

	cart := cartOf(c.mustCall(t, "s1", "ApplyCoupon", map[string]interface{}{"code": " save50 "}))
	assert.Equal(t, "SAVE50", cart["coupon_code"])
	assert.Equal(t, float64(50), cart["discount"])
	assert.Equal(t, float64(320+40-50), cart["total"])

	cart = cartOf(c.mustCall(t, "s1", "RemoveCoupon", nil))
	assert.NotContains(t, cart, "coupon_code")
	assert.Equal(t, float64(0), cart["discount"])
	assert.Equal(t, float64(360), cart["total"])
}

func TestClearCart(t *testing.T) {
	c := newTestClient(t)

	c.mustCall(t, "s1", "AddLine", map[string]interface{}{"menu_item_id": "butter-chicken"})
	c.mustCall(t, "s1", "ApplyCoupon", map[string]interface{}{"code": "SAVE50"})

	cart := cartOf(c.mustCall(t, "s1", "ClearCart", nil))
	assert.Empty(t, cart["lines"])
	assert.Equal(t, float64(0), cart["total"])
	assert.NotContains(t, cart, "coupon_code")
}

func TestSessions_areIsolated(t *testing.T) {
	c := newTestClient(t)

	c.mustCall(t, "alice", "AddLine", map[string]interface{}{"menu_item_id": "butter-chicken"})

	bob := cartOf(c.mustCall(t, "bob", "GetCart", nil))
	assert.Empty(t, bob["lines"])
	alice := cartOf(c.mustCall(t, "alice", "GetCart", nil))
	assert.Len(t, alice["lines"], 1)
	assert.Equal(t, 2, c.srv.sessions.len())
}

func TestWatch_streamsChanges(t *testing.T) {
	c := newTestClient(t)

	ctx := sessionCtx(t, "s1")
	stream, err := c.conn.NewStream(ctx, &cartServiceDesc.Streams[0], fullMethod("Watch"))
	require.NoError(t, err)
	require.NoError(t, stream.SendMsg(&structpb.Struct{}))
	require.NoError(t, stream.CloseSend())

	initial := new(structpb.Struct)
	require.NoError(t, stream.RecvMsg(initial))
	assert.NotContains(t, initial.AsMap(), "action")
	assert.Empty(t, cartOf(initial)["lines"])

	c.mustCall(t, "s1", "AddLine", map[string]interface{}{"menu_item_id": "masala-chai", "quantity": 2})

	update := new(structpb.Struct)
	require.NoError(t, stream.RecvMsg(update))
	assert.Equal(t, "ADD_LINE", update.GetFields()["action"].GetStringValue())
	assert.Equal(t, float64(60), cartOf(update)["subtotal"])
}

func TestWatch_requiresSession(t *testing.T) {
	c := newTestClient(t)

	stream, err := c.conn.NewStream(sessionCtx(t, ""), &cartServiceDesc.Streams[0], fullMethod("Watch"))
	require.NoError(t, err)
	require.NoError(t, stream.SendMsg(&structpb.Struct{}))
	require.NoError(t, stream.CloseSend())

	err = stream.RecvMsg(new(structpb.Struct))
	assertCode(t, err, codes.InvalidArgument)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
		msg  string
	}{
		{"invalid argument", logic.NewInvalidArgument("bad"), codes.InvalidArgument, "bad"},
		{"failed precondition", logic.NewFailedPrecondition("empty"), codes.FailedPrecondition, "empty"},
		{"wrapped command error", fmt.Errorf("redeem: %w", logic.NewInvalidArgument("unknown code")), codes.InvalidArgument, "unknown code"},
		{"missing store", logic.ErrNoStore, codes.Internal, "no cart session attached to request"},
		{"wrapped missing store", fmt.Errorf("get cart: %w", logic.ErrNoStore), codes.Internal, "no cart session attached to request"},
		{"status passes through", status.Error(codes.NotFound, "gone"), codes.NotFound, "gone"},
		{"unknown command code", &logic.CommandError{Code: logic.StatusCode(42), Message: "odd"}, codes.Internal, "internal error: odd"},
		{"plain error", assert.AnError, codes.Internal, "internal error: " + assert.AnError.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok := status.FromError(mapError(tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.want, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}

	assert.NoError(t, mapError(nil))
}

func TestHandlers_withoutSessionStoreFailInternal(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	req := &structpb.Struct{}

	calls := map[string]func() (*structpb.Struct, error){
		"GetCart":        func() (*structpb.Struct, error) { return c.srv.GetCart(ctx, req) },
		"AddLine":        func() (*structpb.Struct, error) { return c.srv.AddLine(ctx, req) },
		"RemoveLine":     func() (*structpb.Struct, error) { return c.srv.RemoveLine(ctx, req) },
		"UpdateQuantity": func() (*structpb.Struct, error) { return c.srv.UpdateQuantity(ctx, req) },
		"ClearCart":      func() (*structpb.Struct, error) { return c.srv.ClearCart(ctx, req) },
		"ApplyCoupon":    func() (*structpb.Struct, error) { return c.srv.ApplyCoupon(ctx, req) },
		"RemoveCoupon":   func() (*structpb.Struct, error) { return c.srv.RemoveCoupon(ctx, req) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { _, err = call() })
			assertCode(t, err, codes.Internal)
		})
	}
}
