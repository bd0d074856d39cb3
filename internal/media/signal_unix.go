//go:build !windows

package media

import "os"

var interruptSignal = os.Interrupt
