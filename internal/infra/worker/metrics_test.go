package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordJobRun(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("success"))

	testMetrics.RecordJobRun("success")

	after := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("success"))
	if after != before+1 {
		t.Errorf("Expected success counter to increase by 1, got %v -> %v", before, after)
	}
}

func TestMetrics_RecordJobRun_SeparateStatuses(t *testing.T) {
	successBefore := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("failure"))

	testMetrics.RecordJobRun("failure")

	successAfter := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("success"))
	failureAfter := testutil.ToFloat64(testMetrics.JobRunsTotal.WithLabelValues("failure"))

	if successAfter != successBefore {
		t.Error("Recording a failure should not touch the success counter")
	}
	if failureAfter != failureBefore+1 {
		t.Errorf("Expected failure counter to increase by 1, got %v -> %v", failureBefore, failureAfter)
	}
}

func TestMetrics_RecordPublications(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.JobPublicationsTotal)

	testMetrics.RecordPublications(3)

	after := testutil.ToFloat64(testMetrics.JobPublicationsTotal)
	if after != before+3 {
		t.Errorf("Expected publications counter to increase by 3, got %v -> %v", before, after)
	}
}

func TestMetrics_RecordMailsSent(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.JobMailsSentTotal)

	testMetrics.RecordMailsSent(2)

	after := testutil.ToFloat64(testMetrics.JobMailsSentTotal)
	if after != before+2 {
		t.Errorf("Expected mails sent counter to increase by 2, got %v -> %v", before, after)
	}
}

func TestMetrics_RecordLastSuccess(t *testing.T) {
	testMetrics.RecordLastSuccess()

	if got := testutil.ToFloat64(testMetrics.JobLastSuccessTimestamp); got <= 0 {
		t.Errorf("Expected last success timestamp to be set, got %v", got)
	}
}

func TestMetrics_EmbedsConfigMetrics(t *testing.T) {
	if testMetrics.Metrics == nil {
		t.Fatal("Expected embedded configuration metrics to be initialized")
	}

	testMetrics.SetFallbackActive(true)
	if got := testutil.ToFloat64(testMetrics.FallbackActive); got != 1 {
		t.Errorf("Expected fallback active gauge 1, got %v", got)
	}
	testMetrics.SetFallbackActive(false)
}
