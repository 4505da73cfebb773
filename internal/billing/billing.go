// Package billing holds the lesson-numbering and billing-period math.
// Everything here is pure and synchronous: callers fetch collections at the
// boundary and pass them in, so none of these functions touch the database.
package billing

// DefaultBucketSize is the number of lessons that make up one billing
// period ("month" in the operation's terminology, not a calendar month).
const DefaultBucketSize = 8

// NextLessonNumber returns the sequential lesson number to assign to a
// student's next attendance record: 1 for an empty history, otherwise the
// current maximum plus one.
//
// The counter derives from the current max at call time. If the
// highest-numbered record is deleted, the next call reuses that number.
// Historical billing math depends on this exact numbering, so it is kept
// rather than replaced with a durable sequence.
func NextLessonNumber(lessonNumbers []int) int {
	max := 0
	for _, n := range lessonNumbers {
		if n > max {
			max = n
		}
	}
	return max + 1
}

// DisplayLessonNumber converts a raw lesson number into the cyclic
// 1..bucketSize label shown in the console. Billing math always uses the
// raw number, never this one.
func DisplayLessonNumber(raw, bucketSize int) int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	if raw <= 0 {
		return 1
	}
	return (raw-1)%bucketSize + 1
}

// BillingPeriod maps a raw lesson number to its billing period:
// lessons 1..bucketSize belong to period 1, the next bucketSize to period 2,
// and so on. Non-positive input is clamped to period 1 so malformed upstream
// data cannot crash the scan flow.
func BillingPeriod(raw, bucketSize int) int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	if raw <= 0 {
		return 1
	}
	return (raw + bucketSize - 1) / bucketSize
}

// FirstLessonOf returns the first raw lesson number of a billing period.
func FirstLessonOf(period, bucketSize int) int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	if period < 1 {
		period = 1
	}
	return (period-1)*bucketSize + 1
}

// LastLessonOf returns the last raw lesson number of a billing period.
func LastLessonOf(period, bucketSize int) int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	if period < 1 {
		period = 1
	}
	return period * bucketSize
}
