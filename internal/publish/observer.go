package publish

// Observer receives workflow narration at step checkpoints. Narration never
// alters control flow; implementations must not block.
type Observer interface {
	StepStart(name string)
	StepDone(name string)
	StepSkipped(name, reason string)
	StepFailed(name string, err error)
	Notef(format string, args ...any)
}

// NopObserver discards all narration.
type NopObserver struct{}

func (NopObserver) StepStart(string) {}

func (NopObserver) StepDone(string) {}

func (NopObserver) StepSkipped(string, string) {}

func (NopObserver) StepFailed(string, error) {}

func (NopObserver) Notef(string, ...any) {}

var _ Observer = NopObserver{}
