package domain

// SweepResult reports how many expired entries a sweep removed.
type SweepResult struct {
	OTPRecords        int
	RateLimitCounters int
}

// Total returns the number of entries removed across all stores.
func (r *SweepResult) Total() int {
	return r.OTPRecords + r.RateLimitCounters
}
