package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is the structured value relayed between typedpipe processes.
// Call is a complex number so that plain text would lose its type.
type Record struct {
	Name string
	Age  int64
	Addr string
	Call complex128
}

// Sample returns a fresh copy of the built-in record written at the start
// of a chain.
func Sample() Record {
	addr := "San Carlos St\n" +
		"Carmel, CA 93921\n" +
		"United States"
	return Record{
		Name: "Alo",
		Age:  30,
		Addr: strings.TrimSpace(addr),
		Call: complex(8316261111, 1),
	}
}

// Equal reports whether every field matches exactly, including both parts of Call.
func (r Record) Equal(other Record) bool {
	return r.Name == other.Name &&
		r.Age == other.Age &&
		r.Addr == other.Addr &&
		sameFloat(real(r.Call), real(other.Call)) &&
		sameFloat(imag(r.Call), imag(other.Call))
}

// String renders the record the way the end of a chain prints it.
func (r Record) String() string {
	return fmt.Sprintf("{name: %q, age: %d, addr: %q, call: %s}",
		r.Name, r.Age, r.Addr, FormatComplex(r.Call))
}

// FormatComplex prints c as (re+imi) without exponent notation, so phone
// numbers stay readable.
func FormatComplex(c complex128) string {
	re := strconv.FormatFloat(real(c), 'f', -1, 64)
	im := strconv.FormatFloat(imag(c), 'f', -1, 64)
	if !strings.HasPrefix(im, "-") && !strings.HasPrefix(im, "+") {
		im = "+" + im
	}
	return "(" + re + im + "i)"
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}
