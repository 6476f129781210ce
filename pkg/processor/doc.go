// Package processor defines the condition module contract and the registry
// the dispatch controller resolves module names against.
//
// # Contract
//
// A Processor has a stable name and one operation, Run, which returns the
// module's condition.Set. Run never fails past its own boundary: a tool that
// is missing, exits non-zero, or prints something unexpected only removes
// the facts that depended on it.
//
//	type Processor interface {
//	    Name() string
//	    Run(ctx context.Context) condition.Set
//	}
//
// # Registry
//
// Modules are registered explicitly at startup, in declared order, into a
// Registry. Lookup is exact and case-sensitive. A name may be registered with
// a nil Processor to reserve it; the dispatch controller reports such an
// entry as a contract violation instead of an unknown module.
//
//	reg := processor.NewRegistry()
//	reg.MustRegister("certificates", certificates.New(cfg))
//	p, ok := reg.Get("certificates")
//
// # Configuration
//
// Config carries the dependencies shared by modules: the tool invoker, the
// certificate inspection pool size, and the paths modules read. Construct it
// with NewConfig and functional options.
package processor
