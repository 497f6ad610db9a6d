package domain

// HistoryBuffer holds the most recent results in append order, oldest first.
type HistoryBuffer struct {
	records []ResultRecord
}

// NewHistoryBuffer keeps the newest HistoryCapacity entries of records.
func NewHistoryBuffer(records []ResultRecord) HistoryBuffer {
	if len(records) > HistoryCapacity {
		records = records[len(records)-HistoryCapacity:]
	}
	return HistoryBuffer{records: append([]ResultRecord(nil), records...)}
}

// Append adds r as the newest entry, evicting the oldest ones past capacity.
func (h HistoryBuffer) Append(r ResultRecord) HistoryBuffer {
	next := make([]ResultRecord, 0, len(h.records)+1)
	next = append(next, h.records...)
	next = append(next, r)
	return NewHistoryBuffer(next)
}

func (h HistoryBuffer) Records() []ResultRecord {
	return append([]ResultRecord{}, h.records...)
}

func (h HistoryBuffer) Len() int {
	return len(h.records)
}

func (h HistoryBuffer) Latest() (ResultRecord, bool) {
	if len(h.records) == 0 {
		return ResultRecord{}, false
	}
	return h.records[len(h.records)-1], true
}
