package models

// CounterName identifies one of the fixed outcome counters.
type CounterName string

const (
	// CounterRequest counts successful /action calls
	CounterRequest CounterName = "request_count"

	// CounterClientError counts requests that resolved to 400
	CounterClientError CounterName = "400_count"

	// CounterServerError counts requests that resolved to 500
	CounterServerError CounterName = "500_count"
)

// AllCounters returns the fixed counter set in rendering order.
func AllCounters() []CounterName {
	return []CounterName{CounterClientError, CounterServerError, CounterRequest}
}

// Valid reports whether n is one of the fixed counters.
func (n CounterName) Valid() bool {
	switch n {
	case CounterRequest, CounterClientError, CounterServerError:
		return true
	}
	return false
}

func (n CounterName) String() string {
	return string(n)
}

// Snapshot is a point-in-time copy of every counter.
// Its JSON form is the body of GET /metrics.
type Snapshot struct {
	ClientErrorCount int64 `json:"400_count"`
	ServerErrorCount int64 `json:"500_count"`
	RequestCount     int64 `json:"request_count"`
}
