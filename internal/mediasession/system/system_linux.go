//go:build linux

package system

import (
	"github.com/benbjohnson/clock"

	"npdump/internal/mediasession"
	"npdump/internal/mediasession/mpris"
)

func RequestManager(clk clock.Clock) (mediasession.Manager, error) {
	return mpris.NewManager(clk)
}
