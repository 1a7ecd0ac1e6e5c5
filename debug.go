package lorax

import (
	"fmt"
	"io"
	"os"
)

// debugOut receives debug diagnostics. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugf prints a diagnostic line when the scene is in debug mode.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[lorax] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("lorax debug: %s on disposed node %q", op, n.Name))
	}
}
