//go:build !linux && !windows && !darwin

package system

import (
	"fmt"
	"runtime"

	"github.com/benbjohnson/clock"

	"npdump/internal/mediasession"
)

func RequestManager(clk clock.Clock) (mediasession.Manager, error) {
	return nil, fmt.Errorf("no media session facility on %s", runtime.GOOS)
}
