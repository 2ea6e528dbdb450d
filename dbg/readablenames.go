// Package dbg turns opaque numeric handles into stable, readable names for
// diagnostic output. Triangle and point handles in this module are 32-bit
// arena indices rather than pointers, so unlike a pointer they carry no
// memory address a human can eyeball; this package gives them one anyway.
package dbg

import (
	"fmt"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

var (
	mu   sync.Mutex
	memo = map[string]string{}
)

func init() {
	// Names are generated in order of demand, so we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same handle between runs.
	petname.NonDeterministicMode()
}

// Name returns a stable readable name for the given (kind, id) pair, e.g.
// Name("tri", 42) might return "FrostyHeron". The same pair always maps to
// the same name within a process.
func Name(kind string, id uint32) string {
	key := fmt.Sprintf("%s:%d", kind, id)
	mu.Lock()
	defer mu.Unlock()
	if r, ok := memo[key]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[key] = r
	return r
}

// Triangle is a shorthand for Name("tri", id).
func Triangle(id uint32) string { return Name("tri", id) }

// Point is a shorthand for Name("pt", id).
func Point(id uint32) string { return Name("pt", id) }
