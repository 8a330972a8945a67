//go:build statsview

package statsview

import (
	"context"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Addr is the address the chart server listens on.
const Addr = "localhost:18066"

// Start runs the chart server until ctx is done and returns the page url.
func Start(ctx context.Context) string {
	viewer.SetConfiguration(
		viewer.WithAddr(Addr),
		viewer.WithInterval(int(time.Second/time.Millisecond)),
	)
	mgr := statsview.New()

	go mgr.Start()
	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	return "http://" + Addr + "/debug/statsview"
}

func Available() bool {
	return true
}
