package out

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	catalogrpc "vlx/internal/modules/catalog/adapter/out/rpc"
	"vlx/internal/modules/catalog/domain"
	catalogout "vlx/internal/modules/catalog/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginLabSource loads the catalog from a provider binary speaking the
// catalog gRPC contract. The plugin process lives only for one call.
type PluginLabSource struct {
	binary string
	log    *slog.Logger
}

func NewPluginLabSource(binary string, log *slog.Logger) catalogout.LabSource {
	return &PluginLabSource{binary: binary, log: log}
}

func (s *PluginLabSource) List(ctx context.Context) ([]domain.Lab, error) {
	client, closeFn, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return nil, fmt.Errorf("catalog plugin metadata: %w", err)
	}
	resp, err := client.ListLabs(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("catalog plugin %s timed out: %w", meta.Name, err)
		}
		return nil, fmt.Errorf("catalog plugin list labs: %w", err)
	}
	if s.log != nil {
		s.log.Debug("catalog loaded from plugin", "plugin", meta.Name, "version", meta.Version, "labs", len(resp.Labs))
	}

	labs := make([]domain.Lab, 0, len(resp.Labs))
	for _, l := range resp.Labs {
		lab := domain.Lab{
			ID:            l.ID,
			Title:         l.Title,
			Branch:        l.Branch,
			Difficulty:    int(l.Difficulty),
			Summary:       l.Summary,
			Prerequisites: l.Prerequisites,
		}
		for _, t := range l.Tools {
			lab.Tools = append(lab.Tools, domain.Tool{ID: t.ID, Name: t.Name})
		}
		for _, p := range l.Parameters {
			lab.Parameters = append(lab.Parameters, domain.ParameterSpec{Name: p.Name, Unit: p.Unit, Min: p.Min, Max: p.Max, Default: p.Default})
		}
		labs = append(labs, lab)
	}
	return labs, nil
}

func (s *PluginLabSource) connect() (catalogrpc.CatalogProviderClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  catalogrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          catalogrpc.PluginMap(nil),
		Cmd:              exec.Command(s.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Name: "catalog-plugin", Level: hclog.Warn}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start catalog plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(catalogrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense catalog plugin: %w", err)
	}
	typed, ok := raw.(catalogrpc.CatalogProviderClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("catalog plugin client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
