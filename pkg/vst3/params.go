package vst3

// ParamValueQueue holds the automation points of one parameter for one
// processing block, in the order the host queued them.
type ParamValueQueue interface {
	ParameterID() ParamID
	PointCount() int32
	// Point returns the sample offset and normalized value at index.
	// ok is false when index is out of range.
	Point(index int32) (sampleOffset int32, value ParamValue, ok bool)
}

// ParameterChanges is the set of per-parameter queues for one block.
type ParameterChanges interface {
	ParameterCount() int32
	ParameterData(index int32) ParamValueQueue
}

// Capacity defaults for ParameterChangeList
const (
	DefaultMaxQueues = 64
	DefaultMaxPoints = 64
)

type paramPoint struct {
	offset int32
	value  ParamValue
}

// ParamQueue is a fixed-capacity ParamValueQueue. Adding points never
// allocates once the queue is constructed.
type ParamQueue struct {
	id     ParamID
	points []paramPoint
	count  int32
}

// NewParamQueue creates a queue able to hold maxPoints points
func NewParamQueue(id ParamID, maxPoints int) *ParamQueue {
	return &ParamQueue{
		id:     id,
		points: make([]paramPoint, maxPoints),
	}
}

// ParameterID returns the parameter this queue belongs to
func (q *ParamQueue) ParameterID() ParamID {
	return q.id
}

// PointCount returns the number of queued points
func (q *ParamQueue) PointCount() int32 {
	return q.count
}

// Point returns the point at index
func (q *ParamQueue) Point(index int32) (int32, ParamValue, bool) {
	if index < 0 || index >= q.count {
		return 0, 0, false
	}
	p := q.points[index]
	return p.offset, p.value, true
}

// AddPoint appends a point and returns its index, or -1 if the queue is full
func (q *ParamQueue) AddPoint(sampleOffset int32, value ParamValue) int32 {
	if int(q.count) >= len(q.points) {
		return -1
	}
	index := q.count
	q.points[index] = paramPoint{offset: sampleOffset, value: value}
	q.count++
	return index
}

// Clear drops all points and rebinds the queue to id
func (q *ParamQueue) Clear(id ParamID) {
	q.id = id
	q.count = 0
}

// ParameterChangeList is a preallocated ParameterChanges implementation.
// A host fills it between blocks and clears it after each Process call.
type ParameterChangeList struct {
	queues []*ParamQueue
	count  int32
}

// NewParameterChangeList allocates maxQueues queues of maxPoints points each
func NewParameterChangeList(maxQueues, maxPoints int) *ParameterChangeList {
	if maxQueues <= 0 {
		maxQueues = DefaultMaxQueues
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	l := &ParameterChangeList{
		queues: make([]*ParamQueue, maxQueues),
	}
	for i := range l.queues {
		l.queues[i] = NewParamQueue(0, maxPoints)
	}
	return l
}

// ParameterCount returns the number of parameters with queued changes
func (l *ParameterChangeList) ParameterCount() int32 {
	return l.count
}

// ParameterData returns the queue at index, or nil
func (l *ParameterChangeList) ParameterData(index int32) ParamValueQueue {
	if index < 0 || index >= l.count {
		return nil
	}
	return l.queues[index]
}

// Queue returns the queue for id, claiming a free one if the parameter has
// no queue yet. It returns nil when every queue is in use.
func (l *ParameterChangeList) Queue(id ParamID) *ParamQueue {
	for i := int32(0); i < l.count; i++ {
		if l.queues[i].id == id {
			return l.queues[i]
		}
	}
	if int(l.count) >= len(l.queues) {
		return nil
	}
	q := l.queues[l.count]
	q.Clear(id)
	l.count++
	return q
}

// AddPoint queues a change for id. It reports false if the list or the
// parameter's queue is full.
func (l *ParameterChangeList) AddPoint(id ParamID, sampleOffset int32, value ParamValue) bool {
	q := l.Queue(id)
	if q == nil {
		return false
	}
	return q.AddPoint(sampleOffset, value) >= 0
}

// Clear empties the list, keeping its storage
func (l *ParameterChangeList) Clear() {
	for i := int32(0); i < l.count; i++ {
		l.queues[i].count = 0
	}
	l.count = 0
}
