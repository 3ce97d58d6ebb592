package main

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const cartServiceName = "rayaneats.cart.v1.CartService"

// cartServiceServer is the server side of CartService. Every message is a
// google.protobuf.Struct.
type cartServiceServer interface {
	GetCart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddLine(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveLine(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateQuantity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClearCart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ApplyCoupon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveCoupon(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListMenu(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Watch(*structpb.Struct, grpc.ServerStream) error
}

type unaryMethod func(cartServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

var cartServiceDesc = grpc.ServiceDesc{
	ServiceName: cartServiceName,
	HandlerType: (*cartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryDesc("GetCart", cartServiceServer.GetCart),
		unaryDesc("AddLine", cartServiceServer.AddLine),
		unaryDesc("RemoveLine", cartServiceServer.RemoveLine),
		unaryDesc("UpdateQuantity", cartServiceServer.UpdateQuantity),
		unaryDesc("ClearCart", cartServiceServer.ClearCart),
		unaryDesc("ApplyCoupon", cartServiceServer.ApplyCoupon),
		unaryDesc("RemoveCoupon", cartServiceServer.RemoveCoupon),
		unaryDesc("ListMenu", cartServiceServer.ListMenu),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "rayaneats/cart/v1/cart.proto",
}

func fullMethod(name string) string {
	return "/" + cartServiceName + "/" + name
}

func unaryDesc(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(cartServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(cartServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

func watchHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(cartServiceServer).Watch(in, stream)
}
