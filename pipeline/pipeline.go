package pipeline

import (
	"go.uber.org/zap"

	kovid "github.com/djolertrk/kovid-obfuscation-passes"
	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// Config configures a Pipeline.
type Config struct {
	// Registry supplies the passes; nil selects DefaultRegistry(CryptoKey).
	Registry *Registry
	// Logger receives per-pass diagnostics; nil selects a no-op logger.
	Logger *zap.Logger
	// CryptoKey seeds the default registry's ciphers.
	CryptoKey string
}

// Pipeline is the host-facing driver. It is stateless between calls; each
// call operates on exactly one function or module, start to finish, on the
// calling goroutine.
type Pipeline struct {
	reg *Registry
	log *zap.Logger
}

// New creates a pipeline from the config.
func New(cfg Config) *Pipeline {
	reg := cfg.Registry
	if reg == nil {
		reg = DefaultRegistry(cfg.CryptoKey)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{reg: reg, log: log}
}

// Transform applies one strategy to one function and reports whether the
// function was mutated. An unknown strategy is logged and reported as
// unchanged; it never aborts the host's pipeline.
func (p *Pipeline) Transform(fn *ir.Function, strategy kovid.Strategy) bool {
	pass, err := p.reg.FunctionPass(strategy)
	if err != nil {
		p.log.Warn("strategy not registered",
			zap.String("strategy", string(strategy)),
			zap.Error(err))
		return false
	}

	p.log.Info("complicating",
		zap.String("func", fn.Name),
		zap.String("pass", pass.Name()))
	return pass.Run(fn)
}

// RunFunction applies the strategies to the function in order and reports
// whether any of them mutated it.
func (p *Pipeline) RunFunction(fn *ir.Function, strategies ...kovid.Strategy) bool {
	changed := false
	for _, s := range strategies {
		if p.Transform(fn, s) {
			changed = true
		}
	}
	return changed
}

// RunModule applies the strategies to the module in order. A strategy
// bound to a function pass runs over every defined function; a strategy
// bound to a module pass runs once. The aggregate changed signal is
// returned.
func (p *Pipeline) RunModule(m *ir.Module, strategies ...kovid.Strategy) bool {
	changed := false
	for _, s := range strategies {
		if mp, err := p.reg.ModulePass(s); err == nil {
			p.log.Info("running module pass",
				zap.String("module", m.Name),
				zap.String("pass", mp.Name()))
			if mp.RunModule(m) {
				changed = true
			}
			continue
		}
		for _, fn := range m.Funcs {
			if fn.IsDeclaration() {
				continue
			}
			if p.Transform(fn, s) {
				changed = true
			}
		}
	}
	return changed
}

// Transform implements the host integration contract with a default
// pipeline: one pure, synchronous call per function.
func Transform(fn *ir.Function, strategy kovid.Strategy) bool {
	return New(Config{}).Transform(fn, strategy)
}
