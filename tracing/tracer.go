package tracing

// A Tracer can collect task traces.
type Tracer interface {
	StartTask(task Task)
	StepTask(task Task)
	EndTask(task Task)
}

// A TraceWriter is the storage backend of a tracer.
type TraceWriter interface {
	Init()
	Write(task Task)
	Flush()
}
