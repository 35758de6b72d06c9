package excs

// signal is the panic value carrying control from a raise or an early exit
// to the deferred recover of the target frame.
type signal struct {
	frame *Frame
	exit  Exit
}
