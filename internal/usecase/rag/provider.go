package rag

import (
	"context"
	"sync"
)

// Provider hands out a single shared RAGUsecase, constructing it on first
// use. A failed construction is reported to the caller and retried on the
// next request, so the service can come up before the model server does.
type Provider struct {
	mu     sync.Mutex
	build  func(ctx context.Context) (*RAGUsecase, error)
	engine *RAGUsecase
}

func NewProvider(build func(ctx context.Context) (*RAGUsecase, error)) *Provider {
	return &Provider{build: build}
}

// Get returns the shared engine, constructing it if needed.
func (p *Provider) Get(ctx context.Context) (*RAGUsecase, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.engine != nil {
		return p.engine, nil
	}

	engine, err := p.build(ctx)
	if err != nil {
		return nil, err
	}
	p.engine = engine
	return engine, nil
}
