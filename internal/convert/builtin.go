package convert

import (
	"fmt"
)

// registerBuiltins loads the builtin conversion pairs. The set mirrors what
// hand-written mapping code reaches for: numeric casts, textual numbers,
// textual booleans, RFC3339 datetimes, durations, Unix timestamps.
func (r *Registry) registerBuiltins() {
	r.registerNumeric()
	r.registerTextNumber()
	r.registerBool()
	r.registerTime()
	r.registerDuration()
}

func (r *Registry) registerNumeric() {
	for from := Kind(1); int(from) < KindTotal; from++ {
		if !from.IsNumber() {
			continue
		}

		for to := Kind(1); int(to) < KindTotal; to++ {
			if !to.IsNumber() || from == to {
				continue
			}

			r.Register(from.Descriptor(), to.Descriptor(), simpleProvider{
				open:  to.GoName() + "(",
				close: ")",
			})
		}
	}
}

func (r *Registry) registerTextNumber() {
	str := KindString.Descriptor()

	for k := Kind(1); int(k) < KindTotal; k++ {
		switch {
		case k.IsSigned():
			r.Register(k.Descriptor(), str, simpleProvider{
				open:    "strconv.FormatInt(int64(",
				close:   "), 10)",
				imports: []string{"strconv"},
			})
			r.Register(str, k.Descriptor(), parseProvider(k, "strconv.ParseInt(s, 10, %d)"))
		case k.IsUnsigned():
			r.Register(k.Descriptor(), str, simpleProvider{
				open:    "strconv.FormatUint(uint64(",
				close:   "), 10)",
				imports: []string{"strconv"},
			})
			r.Register(str, k.Descriptor(), parseProvider(k, "strconv.ParseUint(s, 10, %d)"))
		case k.IsFloat():
			r.Register(k.Descriptor(), str, simpleProvider{
				open:    "strconv.FormatFloat(float64(",
				close:   "), 'f', -1, 64)",
				imports: []string{"strconv"},
			})
			r.Register(str, k.Descriptor(), parseProvider(k, "strconv.ParseFloat(s, %d)"))
		}
	}
}

// parseProvider builds a total string-to-number conversion. Parse failures
// yield zero; error-propagating parses belong in user-declared methods.
func parseProvider(k Kind, call string) Provider {
	name := k.GoName()

	return simpleProvider{
		open: fmt.Sprintf("func(s string) %s { v, _ := %s; return %s(v) }(",
			name, fmt.Sprintf(call, k.Bits()), name),
		close:   ")",
		imports: []string{"strconv"},
	}
}

func (r *Registry) registerBool() {
	str := KindString.Descriptor()
	boolean := KindBool.Descriptor()

	r.Register(boolean, str, simpleProvider{
		open:    "strconv.FormatBool(",
		close:   ")",
		imports: []string{"strconv"},
	})
	r.Register(str, boolean, simpleProvider{
		open:    "func(s string) bool { v, _ := strconv.ParseBool(s); return v }(",
		close:   ")",
		imports: []string{"strconv"},
	})

	// numeric bool: 0/1 representation
	for k := Kind(1); int(k) < KindTotal; k++ {
		if !k.IsInteger() {
			continue
		}

		r.Register(k.Descriptor(), boolean, simpleProvider{
			open:  "(",
			close: " != 0)",
		})
		r.Register(boolean, k.Descriptor(), simpleProvider{
			open:  fmt.Sprintf("func(b bool) %s { if b { return 1 }; return 0 }(", k.GoName()),
			close: ")",
		})
	}
}

func (r *Registry) registerTime() {
	str := KindString.Descriptor()
	tm := KindTime.Descriptor()

	r.Register(tm, str, timeFormatProvider{})
	r.Register(str, tm, timeParseProvider{})

	// Unix timestamps: integer seconds <-> time.Time
	for k := Kind(1); int(k) < KindTotal; k++ {
		if !k.IsInteger() || k == KindUint64 {
			continue
		}

		r.Register(k.Descriptor(), tm, simpleProvider{
			open:    "time.Unix(int64(",
			close:   "), 0)",
			imports: []string{"time"},
		})

		if k.IsSigned() {
			r.Register(tm, k.Descriptor(), simpleProvider{
				open:  k.GoName() + "(",
				close: ".Unix())",
			})
		}
	}
}

func (r *Registry) registerDuration() {
	str := KindString.Descriptor()
	dur := KindDuration.Descriptor()

	r.Register(dur, str, simpleProvider{close: ".String()"})
	r.Register(str, dur, simpleProvider{
		open:    "func(s string) time.Duration { d, _ := time.ParseDuration(s); return d }(",
		close:   ")",
		imports: []string{"time"},
	})

	// nanoseconds: integer <-> duration
	for k := Kind(1); int(k) < KindTotal; k++ {
		if !k.IsInteger() || k == KindUint64 {
			continue
		}

		r.Register(k.Descriptor(), dur, simpleProvider{
			open:    "time.Duration(",
			close:   ")",
			imports: []string{"time"},
		})

		if k.IsSigned() {
			r.Register(dur, k.Descriptor(), simpleProvider{
				open:  k.GoName() + "(",
				close: ".Nanoseconds())",
			})
		}
	}

	// seconds: float <-> duration
	r.Register(KindFloat32.Descriptor(), dur, simpleProvider{
		open:    "time.Duration(float64(",
		close:   ") * float64(time.Second))",
		imports: []string{"time"},
	})
	r.Register(KindFloat64.Descriptor(), dur, simpleProvider{
		open:    "time.Duration(",
		close:   " * float64(time.Second))",
		imports: []string{"time"},
	})
	r.Register(dur, KindFloat32.Descriptor(), simpleProvider{
		open:  "float32(",
		close: ".Seconds())",
	})
	r.Register(dur, KindFloat64.Descriptor(), simpleProvider{close: ".Seconds()"})
}
