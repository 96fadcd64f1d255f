package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeclRoundTrip(t *testing.T) {
	samples := []string{
		"int a",
		"int* a",
		"const int a",
		"const int* a",
		"int* const a",
		"int a[3]",
		"int* a[3]",
		"const int a[3]",
		"const int* a[3]",
		"int* const a[3]",
	}

	for _, s := range samples {
		d, err := DeclFromC(s)
		require.NoErrorf(t, err, "DeclFromC(%q)", s)
		got := d.ToC(false)
		require.Equalf(t, s, got, "round trip mismatch: from_c(%q).to_c(false)", s)
	}
}

func TestDeclFromCMalformed(t *testing.T) {
	_, err := DeclFromC("int a[3")
	require.Error(t, err, "expected MalformedDeclError on unbalanced array brackets")
	var malformed *MalformedDeclError
	require.True(t, errors.As(err, &malformed), "expected *MalformedDeclError, got %T", err)
}
