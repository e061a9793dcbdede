// Package osmem abstracts the OS-level memory operations a pool
// needs: reserving a stretch of address space, changing the page
// protection of a sub-range, and advising the kernel that the
// physical pages backing a sub-range may be reclaimed.
//
// The pool core only ever talks to the Manager interface, so unit
// tests can substitute a recording fake and never issue real
// syscalls. System is the production implementation, built on
// golang.org/x/sys with one file per platform family.
package osmem

// Manager is the capability the pool core is built against.
//
// Reserve returns a zero-initialized region of at least size bytes.
// The region starts inaccessible where the platform supports it;
// Protect opens up exactly the ranges the caller asks for. Discard is
// a hint only: implementations may drop the physical backing of the
// range, but the virtual reservation must survive.
type Manager interface {
	Reserve(size int) ([]byte, error)
	Release(mem []byte) error
	Protect(mem []byte, prot Prot) error
	Discard(mem []byte) error
}

// System performs real memory syscalls. The zero value is ready to
// use.
type System struct{}
