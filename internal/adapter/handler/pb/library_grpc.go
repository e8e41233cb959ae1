package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "library.v1.LibraryService"

type LibraryServiceServer interface {
	SearchBook(context.Context, *SearchBookRequest) (*SearchBookResponse, error)
	CheckoutBook(context.Context, *CheckoutBookRequest) (*CheckoutBookResponse, error)
	ReturnBook(context.Context, *ReturnBookRequest) (*ReturnBookResponse, error)
	CreateBook(context.Context, *CreateBookRequest) (*CreateBookResponse, error)
	GetBook(context.Context, *GetBookRequest) (*GetBookResponse, error)
	UpdateBook(context.Context, *UpdateBookRequest) (*UpdateBookResponse, error)
	DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error)
	GetAllBooks(context.Context, *GetAllBooksRequest) (*GetAllBooksResponse, error)
	GetInventorySummary(context.Context, *GetInventorySummaryRequest) (*GetInventorySummaryResponse, error)
}

// UnimplementedLibraryServiceServer answers every method with codes.Unimplemented.
type UnimplementedLibraryServiceServer struct{}

func (UnimplementedLibraryServiceServer) SearchBook(context.Context, *SearchBookRequest) (*SearchBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SearchBook not implemented")
}

func (UnimplementedLibraryServiceServer) CheckoutBook(context.Context, *CheckoutBookRequest) (*CheckoutBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckoutBook not implemented")
}

func (UnimplementedLibraryServiceServer) ReturnBook(context.Context, *ReturnBookRequest) (*ReturnBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ReturnBook not implemented")
}

func (UnimplementedLibraryServiceServer) CreateBook(context.Context, *CreateBookRequest) (*CreateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBook not implemented")
}

func (UnimplementedLibraryServiceServer) GetBook(context.Context, *GetBookRequest) (*GetBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBook not implemented")
}

func (UnimplementedLibraryServiceServer) UpdateBook(context.Context, *UpdateBookRequest) (*UpdateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateBook not implemented")
}

func (UnimplementedLibraryServiceServer) DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteBook not implemented")
}

func (UnimplementedLibraryServiceServer) GetAllBooks(context.Context, *GetAllBooksRequest) (*GetAllBooksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAllBooks not implemented")
}

func (UnimplementedLibraryServiceServer) GetInventorySummary(context.Context, *GetInventorySummaryRequest) (*GetInventorySummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetInventorySummary not implemented")
}

var LibraryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LibraryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SearchBook", Handler: unaryHandler("SearchBook", LibraryServiceServer.SearchBook)},
		{MethodName: "CheckoutBook", Handler: unaryHandler("CheckoutBook", LibraryServiceServer.CheckoutBook)},
		{MethodName: "ReturnBook", Handler: unaryHandler("ReturnBook", LibraryServiceServer.ReturnBook)},
		{MethodName: "CreateBook", Handler: unaryHandler("CreateBook", LibraryServiceServer.CreateBook)},
		{MethodName: "GetBook", Handler: unaryHandler("GetBook", LibraryServiceServer.GetBook)},
		{MethodName: "UpdateBook", Handler: unaryHandler("UpdateBook", LibraryServiceServer.UpdateBook)},
		{MethodName: "DeleteBook", Handler: unaryHandler("DeleteBook", LibraryServiceServer.DeleteBook)},
		{MethodName: "GetAllBooks", Handler: unaryHandler("GetAllBooks", LibraryServiceServer.GetAllBooks)},
		{MethodName: "GetInventorySummary", Handler: unaryHandler("GetInventorySummary", LibraryServiceServer.GetInventorySummary)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterLibraryServiceServer(s grpc.ServiceRegistrar, srv LibraryServiceServer) {
	s.RegisterService(&LibraryServiceDesc, srv)
}

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req, Resp any](method string, call func(LibraryServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server := srv.(LibraryServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type LibraryServiceClient interface {
	SearchBook(ctx context.Context, in *SearchBookRequest, opts ...grpc.CallOption) (*SearchBookResponse, error)
	CheckoutBook(ctx context.Context, in *CheckoutBookRequest, opts ...grpc.CallOption) (*CheckoutBookResponse, error)
	ReturnBook(ctx context.Context, in *ReturnBookRequest, opts ...grpc.CallOption) (*ReturnBookResponse, error)
	CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*CreateBookResponse, error)
	GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*GetBookResponse, error)
	UpdateBook(ctx context.Context, in *UpdateBookRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error)
	DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error)
	GetAllBooks(ctx context.Context, in *GetAllBooksRequest, opts ...grpc.CallOption) (*GetAllBooksResponse, error)
	GetInventorySummary(ctx context.Context, in *GetInventorySummaryRequest, opts ...grpc.CallOption) (*GetInventorySummaryResponse, error)
}

type libraryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLibraryServiceClient(cc grpc.ClientConnInterface) LibraryServiceClient {
	return &libraryServiceClient{cc: cc}
}

func (c *libraryServiceClient) SearchBook(ctx context.Context, in *SearchBookRequest, opts ...grpc.CallOption) (*SearchBookResponse, error) {
	return invoke[SearchBookResponse](ctx, c.cc, "SearchBook", in, opts)
}

func (c *libraryServiceClient) CheckoutBook(ctx context.Context, in *CheckoutBookRequest, opts ...grpc.CallOption) (*CheckoutBookResponse, error) {
	return invoke[CheckoutBookResponse](ctx, c.cc, "CheckoutBook", in, opts)
}

func (c *libraryServiceClient) ReturnBook(ctx context.Context, in *ReturnBookRequest, opts ...grpc.CallOption) (*ReturnBookResponse, error) {
	return invoke[ReturnBookResponse](ctx, c.cc, "ReturnBook", in, opts)
}

func (c *libraryServiceClient) CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*CreateBookResponse, error) {
	return invoke[CreateBookResponse](ctx, c.cc, "CreateBook", in, opts)
}

func (c *libraryServiceClient) GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*GetBookResponse, error) {
	return invoke[GetBookResponse](ctx, c.cc, "GetBook", in, opts)
}

func (c *libraryServiceClient) UpdateBook(ctx context.Context, in *UpdateBookRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error) {
	return invoke[UpdateBookResponse](ctx, c.cc, "UpdateBook", in, opts)
}

func (c *libraryServiceClient) DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error) {
	return invoke[DeleteBookResponse](ctx, c.cc, "DeleteBook", in, opts)
}

func (c *libraryServiceClient) GetAllBooks(ctx context.Context, in *GetAllBooksRequest, opts ...grpc.CallOption) (*GetAllBooksResponse, error) {
	return invoke[GetAllBooksResponse](ctx, c.cc, "GetAllBooks", in, opts)
}

func (c *libraryServiceClient) GetInventorySummary(ctx context.Context, in *GetInventorySummaryRequest, opts ...grpc.CallOption) (*GetInventorySummaryResponse, error) {
	return invoke[GetInventorySummaryResponse](ctx, c.cc, "GetInventorySummary", in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)

	out := new(Resp)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
