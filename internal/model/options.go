package model

// Option is a single compiler option as a flag/value pair.
type Option struct {
	Flag  string
	Value string
}

// Options is an ordered list of compiler options. Append order is
// emission order; re-ordering would break byte-identical regeneration
// of the command line across builds.
type Options struct {
	list []Option
}

// AddIfNonBlank appends the option unless its value is blank.
// An option with an empty value is never emitted.
func (o *Options) AddIfNonBlank(flag, value string) {
	if value == "" {
		return
	}

	o.list = append(o.list, Option{Flag: flag, Value: value})
}

// List returns the accumulated options in emission order.
func (o *Options) List() []Option {
	return o.list
}

// Len returns the number of accumulated options.
func (o *Options) Len() int {
	return len(o.list)
}
