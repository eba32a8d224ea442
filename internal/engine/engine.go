// Package engine implements the medication risk and interaction evaluators.
// Every evaluator is a deterministic pure function over its inputs and the
// static rule catalog: no shared mutable state, no I/O, no error returns.
// Failure modes are normal, typed result values.
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/medrisk-server/internal/catalog"
)

// Engine evaluates single-medication risk, cross-medication interactions,
// and contraindications against an immutable rule catalog.
type Engine struct {
	log     *logrus.Logger
	catalog *catalog.Catalog
}

// New creates an engine bound to the given catalog.
func New(cat *catalog.Catalog, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{
		log:     logger,
		catalog: cat,
	}
}

// Catalog returns the rule catalog the engine evaluates against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}
