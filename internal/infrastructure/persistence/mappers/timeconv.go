package mappers

import "time"

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func timeToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func timePtrToMillis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func millisPtrToTime(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := millisToTime(*ms)
	return &t
}
