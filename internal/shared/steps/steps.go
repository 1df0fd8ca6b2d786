// Package steps records the outcome of best-effort sub-operations that must
// not fail their parent request.
package steps

type Step struct {
	Step  string `json:"step"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type List []Step

// Run executes fn and appends its outcome. The error is captured, never
// returned.
func (l *List) Run(name string, fn func() error) bool {
	if err := fn(); err != nil {
		*l = append(*l, Step{Step: name, OK: false, Error: err.Error()})
		return false
	}
	*l = append(*l, Step{Step: name, OK: true})
	return true
}

func (l List) Degraded() bool {
	for _, s := range l {
		if !s.OK {
			return true
		}
	}
	return false
}

// Message picks ok when every step succeeded and degraded otherwise.
func (l List) Message(ok, degraded string) string {
	if l.Degraded() {
		return degraded
	}
	return ok
}
