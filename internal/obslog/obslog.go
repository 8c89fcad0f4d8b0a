// Package obslog provides the structured pivot/phase tracing the simplex
// engine emits. It replaces the unconditional print(self) calls the Python
// reference (original_source/lp_solver.py) made at the start of every
// phase and pivot with a leveled, structured zap logger that stays silent
// unless a caller opts in.
package obslog

import "go.uber.org/zap"

var logger = zap.NewNop().Sugar()

// L returns the package-level logger. Library use is silent by default;
// install a development logger with Init to see pivot tracing.
func L() *zap.SugaredLogger { return logger }

// Init installs a development (human-readable, debug-level) logger when
// verbose is true, and a no-op logger otherwise. Called once by
// cmd/ineqcheck at startup.
func Init(verbose bool) {
	if !verbose {
		logger = zap.NewNop().Sugar()
		return
	}
	dev, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = dev.Sugar()
}
