//go:build darwin

package system

import (
	"github.com/benbjohnson/clock"

	"npdump/internal/mediasession"
	"npdump/internal/mediasession/applescript"
)

func RequestManager(clk clock.Clock) (mediasession.Manager, error) {
	return applescript.NewManager(clk), nil
}
