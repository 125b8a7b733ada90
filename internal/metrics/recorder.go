package metrics

// Recorder receives schedule editor events. NoopRecorder is used when
// metrics are not configured.
type Recorder interface {
	IncSessionOpened(source string, fallback bool)
	IncOperation(op string, changed bool)
	IncFieldWrite(success bool)
	IncSessionClosed()
}

type NoopRecorder struct{}

func (NoopRecorder) IncSessionOpened(string, bool) {}
func (NoopRecorder) IncOperation(string, bool)     {}
func (NoopRecorder) IncFieldWrite(bool)            {}
func (NoopRecorder) IncSessionClosed()             {}
