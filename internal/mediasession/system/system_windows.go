//go:build windows

package system

import (
	"github.com/benbjohnson/clock"

	"npdump/internal/mediasession"
	"npdump/internal/mediasession/gsmtc"
)

func RequestManager(clk clock.Clock) (mediasession.Manager, error) {
	return gsmtc.NewManager(), nil
}
