package view

type errKind uint8

const (
	errNone errKind = iota
	errPrecondition
	errValidation
	errRemote
)

// errorRegion holds the one message a view shows. Setting replaces it.
type errorRegion struct {
	kind errKind
	text string
}

func (r *errorRegion) set(kind errKind, text string) {
	r.kind, r.text = kind, text
}

func (r *errorRegion) clear() {
	r.kind, r.text = errNone, ""
}
