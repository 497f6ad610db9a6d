package main

import (
	"context"

	"github.com/hashicorp/go-plugin"

	catalogrpc "vlx/internal/modules/catalog/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *catalogrpc.Empty) (*catalogrpc.Metadata, error) {
	return &catalogrpc.Metadata{Name: "catalog-reference", Version: "1.0.0"}, nil
}

func (s *server) ListLabs(_ context.Context, _ *catalogrpc.Empty) (*catalogrpc.ListLabsResponse, error) {
	return &catalogrpc.ListLabsResponse{Labs: []catalogrpc.Lab{
		{
			ID:         "circuit-ohm",
			Title:      "Ohm's Law Circuit",
			Branch:     "physics",
			Difficulty: 0,
			Summary:    "Vary voltage and resistance and read the current.",
			Tools: []catalogrpc.Tool{
				{ID: "battery", Name: "Battery Pack"},
				{ID: "resistor", Name: "Resistor Set"},
				{ID: "ammeter", Name: "Ammeter"},
				{ID: "voltmeter", Name: "Voltmeter"},
				{ID: "breadboard", Name: "Breadboard"},
			},
			Parameters: []catalogrpc.Parameter{
				{Name: "voltage", Unit: "V", Min: 0, Max: 12, Default: 0},
				{Name: "resistance", Unit: "ohm", Min: 10, Max: 1000, Default: 10},
			},
		},
		{
			ID:            "flame-tests",
			Title:         "Flame Tests",
			Branch:        "chemistry",
			Difficulty:    1,
			Summary:       "Identify metal ions from the color of their flame.",
			Prerequisites: []string{"circuit-ohm"},
			Tools: []catalogrpc.Tool{
				{ID: "burner", Name: "Bunsen Burner"},
				{ID: "wire-loop", Name: "Nichrome Loop"},
				{ID: "spectroscope", Name: "Spectroscope"},
				{ID: "goggles", Name: "Safety Goggles"},
				{ID: "samples", Name: "Salt Samples"},
			},
			Parameters: []catalogrpc.Parameter{
				{Name: "flame temperature", Unit: "C", Min: 300, Max: 1500, Default: 300},
				{Name: "exposure", Unit: "s", Min: 1, Max: 10, Default: 1},
			},
		},
	}}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: catalogrpc.HandshakeConfig,
		Plugins:         catalogrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
