package osmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Prot_String(t *testing.T) {
	tests := []struct {
		prot Prot
		want string
	}{
		{0, "---"},
		{Read, "r--"},
		{Write, "-w-"},
		{Exec, "--x"},
		{Read | Write, "rw-"},
		{Read | Exec, "r-x"},
		{Read | Write | Exec, "rwx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.prot.String())
	}
}
