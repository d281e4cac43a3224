package formater

import (
	"fmt"
	"time"
)

func CreateStreamDuration(streamTime, now time.Time) string {

	streamDuration := now.Sub(streamTime)
	if streamDuration < 0 {
		streamDuration = 0
	}

	hours := streamDuration / time.Hour
	streamDuration = streamDuration % time.Hour
	minutes := streamDuration / time.Minute
	streamDuration = streamDuration % time.Minute
	seconds := streamDuration / time.Second
	streamDurationStr := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)

	return streamDurationStr
}
