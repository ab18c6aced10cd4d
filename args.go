package shush

// namedOption is one named option and its flattening form.
// When flag is set the option renders as a bare token; otherwise it
// carries a stringified value.
type namedOption struct {
	name  string
	value string
	flag  bool
}

// Arguments is an immutable accumulator of positional values and named
// options. Every combining operation returns a new Arguments; no
// Arguments value is ever modified after creation, so values may be
// shared freely across goroutines and derived commands.
//
// Options preserve insertion order. Combining two argument sets appends
// positionals and merges options, with the right-hand side overriding
// on key collision while keeping the key's original position.
type Arguments struct {
	positionals []Value
	options     []namedOption
}

// withPositionals returns a new Arguments with vs appended, each
// converted to its Value variant.
func (a Arguments) withPositionals(vs []any) Arguments {
	ps := make([]Value, 0, len(a.positionals)+len(vs))
	ps = append(ps, a.positionals...)
	for _, v := range vs {
		ps = append(ps, arg(v))
	}
	return Arguments{positionals: ps, options: a.options}
}

// withOption returns a new Arguments with the named option set.
// A boolean true value marks the option as a bare flag; anything else
// is stringified. Setting an existing name overrides its value in
// place.
func (a Arguments) withOption(name string, value any) Arguments {
	opts := make([]namedOption, len(a.options))
	copy(opts, a.options)

	o := namedOption{name: name}
	if b, ok := value.(bool); ok && b {
		o.flag = true
	} else {
		o.value = stringify(value)
	}

	for i := range opts {
		if opts[i].name == name {
			opts[i] = o
			return Arguments{positionals: a.positionals, options: opts}
		}
	}
	return Arguments{positionals: a.positionals, options: append(opts, o)}
}

// flatten produces the literal argument vector: the program name,
// options in insertion order, then positionals in sequence order.
//
// Boolean flags render as "-k" or "--kebab-name". Valued
// single-character options render as two tokens ("-c", "v"); valued
// long options use inline "=" ("--regexp=foo"). The long-form inline
// "=" is a hard format contract, pinned by tests.
func (a Arguments) flatten(program string) []string {
	argv := make([]string, 0, 1+2*len(a.options)+len(a.positionals))
	argv = append(argv, program)
	for _, o := range a.options {
		switch {
		case o.flag:
			argv = append(argv, optionToken(o.name))
		case len(o.name) == 1:
			argv = append(argv, optionToken(o.name), o.value)
		default:
			argv = append(argv, optionToken(o.name)+"="+o.value)
		}
	}
	for _, v := range a.positionals {
		argv = v.appendTo(argv)
	}
	return argv
}
