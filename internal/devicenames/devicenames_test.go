package devicenames

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)
	require.Greater(t, tbl.Len(), 20)
}

func TestResolve(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	cases := []struct {
		raw  string
		want string
	}{
		{"samsung SM-S928N", "Galaxy S24 Ultra"},
		{"SM-S928N", "Galaxy S24 Ultra"},
		{"samsung SM-F956N", "Galaxy Z Fold6"},
		{"acme XX-000", "acme XX-000"},
		{"XX-000", "XX-000"},
		{"unknown", "unknown"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, tbl.Resolve(c.raw), "raw=%q", c.raw)
	}
}
