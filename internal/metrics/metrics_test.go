package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestParserRecords(t *testing.T) {
	m := NewParser()
	start := time.Now().Add(-time.Second)

	if inc := delta(t, parserBlocksTotal.WithLabelValues("success"), func() {
		m.ObserveBlock(nil, 102138605, start)
	}); inc != 1 {
		t.Fatalf("expected block success counter increment, got %v", inc)
	}

	if height := testutil.ToFloat64(parserLastBlockHeight); height != 102138605 {
		t.Fatalf("expected last height gauge update, got %v", height)
	}

	if errInc := delta(t, parserBlocksTotal.WithLabelValues("error"), func() {
		m.ObserveBlock(errors.New("boom"), 102138606, start)
	}); errInc != 1 {
		t.Fatalf("expected block error counter increment, got %v", errInc)
	}

	if height := testutil.ToFloat64(parserLastBlockHeight); height != 102138605 {
		t.Fatalf("failed block must not move the height gauge, got %v", height)
	}

	if inc := delta(t, parserOperationsTotal.WithLabelValues("custom_json", "success"), func() {
		m.ObserveOperation("custom_json", nil)
	}); inc != 1 {
		t.Fatalf("expected operation counter increment, got %v", inc)
	}
}

func TestRPCClientRecords(t *testing.T) {
	m := NewRPCClient()
	start := time.Now().Add(-200 * time.Millisecond)

	if inc := delta(t, rpcRequestsTotal.WithLabelValues("condenser_api.get_block", "success"), func() {
		m.Observe("condenser_api.get_block", nil, start)
	}); inc != 1 {
		t.Fatalf("expected rpc call counter increment, got %v", inc)
	}

	m.Observe("condenser_api.get_block", errors.New("oops"), start)
}
