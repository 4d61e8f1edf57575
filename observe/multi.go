// SPDX-License-Identifier: MIT

package observe

import "github.com/katalvlaran/kinetics/calibrate"

// multi fans events out to several observers.
type multi []calibrate.Observer

// Multi returns an Observer that forwards to every non-nil obs in order.
// A panic in one observer does not stop the others; the first panic value
// is re-raised after all have been called.
func Multi(obs ...calibrate.Observer) calibrate.Observer {
	m := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}

	return m
}

func (m multi) OnAttempt(ev calibrate.Event) {
	m.each(func(o calibrate.Observer) { o.OnAttempt(ev) })
}

func (m multi) OnFinish(ev calibrate.Event, err error) {
	m.each(func(o calibrate.Observer) { o.OnFinish(ev, err) })
}

func (m multi) each(fn func(calibrate.Observer)) {
	var first any
	for _, o := range m {
		func() {
			defer func() {
				if r := recover(); r != nil && first == nil {
					first = r
				}
			}()
			fn(o)
		}()
	}
	if first != nil {
		panic(first)
	}
}
