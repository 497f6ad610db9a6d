// Package rpc is the wire contract between vlx and out-of-process catalog
// providers. Messages travel over go-plugin's gRPC transport with a JSON codec,
// so no generated protobuf code is needed.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "catalog"
	serviceName       = "vlx.catalog.v1.CatalogProvider"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodListLabs    = "/" + serviceName + "/ListLabs"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "VLX_CATALOG_PLUGIN",
	MagicCookieValue: "vlx",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Tool struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Parameter struct {
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

type Lab struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Branch        string      `json:"branch"`
	Difficulty    int32       `json:"difficulty"`
	Summary       string      `json:"summary"`
	Prerequisites []string    `json:"prerequisites"`
	Tools         []Tool      `json:"tools"`
	Parameters    []Parameter `json:"parameters"`
}

type ListLabsResponse struct {
	Labs []Lab `json:"labs"`
}

type CatalogProviderServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	ListLabs(ctx context.Context, in *Empty) (*ListLabsResponse, error)
}

type CatalogProviderClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	ListLabs(ctx context.Context) (*ListLabsResponse, error)
}

type catalogProviderClient struct {
	conn *grpc.ClientConn
}

func NewCatalogProviderClient(conn *grpc.ClientConn) CatalogProviderClient {
	return &catalogProviderClient{conn: conn}
}

func (c *catalogProviderClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogProviderClient) ListLabs(ctx context.Context) (*ListLabsResponse, error) {
	out := &ListLabsResponse{}
	if err := c.conn.Invoke(ctx, methodListLabs, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func unaryHandler(fullMethod string, call func(context.Context) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &Empty{}
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			if _, ok := req.(*Empty); !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterCatalogProviderServer(server grpc.ServiceRegistrar, impl CatalogProviderServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*CatalogProviderServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: unaryHandler(methodGetMetadata, func(ctx context.Context) (any, error) {
					return impl.GetMetadata(ctx, &Empty{})
				}),
			},
			{
				MethodName: "ListLabs",
				Handler: unaryHandler(methodListLabs, func(ctx context.Context) (any, error) {
					return impl.ListLabs(ctx, &Empty{})
				}),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/catalog-rpc-v1.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl CatalogProviderServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterCatalogProviderServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewCatalogProviderClient(conn), nil
}

func PluginMap(impl CatalogProviderServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
