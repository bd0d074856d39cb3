//go:build windows

package media

import "os"

// Windows cannot deliver SIGINT to a child; Kill is the only stop available.
var interruptSignal = os.Kill
