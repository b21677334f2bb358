package typist

import "testing"

func TestNoopTypist_NeverErrors(t *testing.T) {
	ty := New()
	if err := ty.TypeText("hello world"); err != nil {
		t.Errorf("TypeText() error = %v", err)
	}
}
