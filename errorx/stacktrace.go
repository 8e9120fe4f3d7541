package errorx

import (
	"runtime"
	"strconv"
	"strings"
)

const stackTraceDepth = 32

type Frame struct {
	File     string
	Line     int
	Function string
}

// String implements the fmt.Stringer interface.
func (f Frame) String() string {
	s := &strings.Builder{}
	f.writeFrame(s)
	return s.String()
}

func (f Frame) writeFrame(w *strings.Builder) {
	w.WriteString("\tat ")
	w.WriteString(shortname(f.Function))
	w.WriteString(" (")
	w.WriteString(f.File)
	w.WriteString(":")
	w.WriteString(strconv.Itoa(f.Line))
	w.WriteString(")")
}

// Callers is a list of program counters returned by the runtime.Callers.
type Callers []uintptr

// Frames returns a slice of structures with a function/file/line information.
func (c Callers) Frames() []Frame {
	if len(c) == 0 {
		return nil
	}
	r := make([]Frame, 0, len(c))
	f := runtime.CallersFrames(c)
	for {
		frame, more := f.Next()
		r = append(r, Frame{
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}
	return r
}

// String implements the fmt.Stringer interface.
func (c Callers) String() string {
	s := &strings.Builder{}
	for _, frame := range c.Frames() {
		frame.writeFrame(s)
		s.WriteString("\n")
	}
	return s.String()
}

func callers(skip int) Callers {
	b := make([]uintptr, stackTraceDepth)
	l := runtime.Callers(skip+2, b[:])
	return b[:l]
}

func shortname(name string) string {
	i := strings.LastIndex(name, "/")
	return name[i+1:]
}
