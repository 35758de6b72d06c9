package cmds

// Var defines name to take one argument and store it, and name+"." to
// reset the value to zero.
func Var[T any](name string, desc string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset "+name))
	return &value
}

// Switch defines name to set the flag and "!"+name to clear it.
func Switch(name string, desc string) *bool {
	value := new(bool)
	Define(name, Func(func() {
		*value = true
	}).Desc(desc))
	Define("!"+name, Func(func() {
		*value = false
	}).Desc("unset "+name))
	return value
}

// Collect defines name to append its argument to a list. It may be given
// any number of times.
func Collect[T any](name string, desc string) *[]T {
	values := new([]T)
	Define(name, Func(func(v T) {
		*values = append(*values, v)
	}).Desc(desc))
	return values
}
