package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/centers/1/availability", "200", 0.05)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/centers/1/availability", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	ok := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	denied := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), ok)
	assert.Equal(t, float64(1), denied)
}

func TestRecordAvailabilityQuery(t *testing.T) {
	AvailabilityQueriesTotal.Reset()

	RecordAvailabilityQuery("ok")
	RecordAvailabilityQuery("ok")
	RecordAvailabilityQuery("no_slots_today")

	assert.Equal(t, float64(2), testutil.ToFloat64(AvailabilityQueriesTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(AvailabilityQueriesTotal.WithLabelValues("no_slots_today")))
}

func TestRecordBookingCounters(t *testing.T) {
	before := testutil.ToFloat64(BookingsCreatedTotal)
	RecordBooking()
	assert.Equal(t, before+1, testutil.ToFloat64(BookingsCreatedTotal))

	beforeConflicts := testutil.ToFloat64(BookingConflictsTotal)
	RecordBookingConflict()
	assert.Equal(t, beforeConflicts+1, testutil.ToFloat64(BookingConflictsTotal))

	beforeCancels := testutil.ToFloat64(BookingCancellationsTotal)
	RecordBookingCancellation()
	assert.Equal(t, beforeCancels+1, testutil.ToFloat64(BookingCancellationsTotal))
}

func TestRecordEmailAndPayments(t *testing.T) {
	EmailsSentTotal.Reset()
	PaymentIntentsTotal.Reset()

	RecordEmail("booking_confirmation", "queued")
	RecordPaymentIntent("created")
	RecordPaymentIntent("failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "queued")))
	assert.Equal(t, float64(1), testutil.ToFloat64(PaymentIntentsTotal.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(PaymentIntentsTotal.WithLabelValues("failed")))
}
