package common

import (
	"fmt"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// MonthPartitionKey buckets a timestamp into the YYYY-MM key used by the
// audit table's range partitioning.
func MonthPartitionKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
