package db

import "testing"

func TestPoolStats_Accounting(t *testing.T) {
	stats := &PoolStats{TotalConns: 10, IdleConns: 5, AcquiredConns: 5, MaxConns: 20}
	if stats.IdleConns+stats.AcquiredConns != stats.TotalConns {
		t.Errorf("idle %d + acquired %d should equal total %d",
			stats.IdleConns, stats.AcquiredConns, stats.TotalConns)
	}
}
