package osmem

// Prot is the protection requested for a byte range: a bit set of
// Read, Write and Exec. The zero value means no access.
type Prot uint8

const (
	Read Prot = 1 << iota
	Write
	Exec
)

// String renders the set ls -l style, e.g. "rw-" or "r-x".
func (p Prot) String() string {
	b := [3]byte{'-', '-', '-'}
	if p&Read != 0 {
		b[0] = 'r'
	}
	if p&Write != 0 {
		b[1] = 'w'
	}
	if p&Exec != 0 {
		b[2] = 'x'
	}
	return string(b[:])
}
