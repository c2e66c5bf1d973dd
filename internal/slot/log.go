package slot

import "go.uber.org/zap"

// Log receives debug diagnostics from the generator. It is a no-op until
// replaced by the process.
var Log = zap.NewNop()
