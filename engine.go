package makeultra

import (
	"context"
	"fmt"
	"os"
)

// CacheFile is the default path to the persisted Hash Store (spec §6).
const CacheFile = ".make_cache"

// RunOptions gathers everything a single Run needs: where to read
// configuration from, where to write the DOT dump (if any), and the
// Executor knobs.
type RunOptions struct {
	ConfigPath string
	CachePath  string
	DotPath    string
	Options
}

// Run wires the data flow of spec §2 end to end: load configuration,
// walk the configured folders, build the graph to its fixpoint, load the
// hash store, execute the graph from its roots, and persist the hash
// store. It returns a non-zero-exit-worthy error for any fatal condition
// (spec §7).
func Run(opts RunOptions) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	rules, err := cfg.BuildRuleSet()
	if err != nil {
		return err
	}

	graph := NewFileGraph()
	builder := NewGraphBuilder(rules, graph)

	walker := NewWalker(cfg.Folders)
	paths := make(chan string)

	walkErrCh := make(chan error, 1)
	go func() { walkErrCh <- walker.Walk(paths) }()

	if err := builder.Build(context.Background(), paths); err != nil {
		return err
	}
	if err := <-walkErrCh; err != nil {
		return err
	}

	if opts.DotPath != "" {
		f, err := os.Create(opts.DotPath)
		if err != nil {
			return fmt.Errorf("creating dot file %q: %w", opts.DotPath, err)
		}
		defer f.Close()
		if err := WriteDOT(f, graph); err != nil {
			return fmt.Errorf("writing dot file %q: %w", opts.DotPath, err)
		}
	}

	hashStore, err := LoadHashStore(opts.CachePath, opts.Force)
	if err != nil {
		return err
	}

	executor := NewExecutor(graph, hashStore, opts.Options)
	if err := executor.Run(); err != nil {
		return err
	}

	if err := hashStore.Persist(opts.CachePath, opts.DryRun); err != nil {
		return err
	}

	return nil
}
