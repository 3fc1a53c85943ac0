package adminsite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteTableResolve(t *testing.T) {
	table := NewRouteTable()
	table.Register("admin:index", "/admin/")
	table.Register("ops:syshealth", "/api/v1/ops/health")

	path, err := table.Resolve("admin:index")
	require.NoError(t, err)
	assert.Equal(t, "/admin/", path)
}

func TestRouteTableUnknownName(t *testing.T) {
	table := NewRouteTable()

	_, err := table.Resolve("nope")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestRouteTableReRegisterOverrides(t *testing.T) {
	table := NewRouteTable()
	table.Register("admin:index", "/admin/")
	table.Register("admin:index", "/backoffice/")

	path, err := table.Resolve("admin:index")
	require.NoError(t, err)
	assert.Equal(t, "/backoffice/", path)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Access events", "access-events"},
		{"  People & Access  ", "people-access"},
		{"User", "user"},
		{"déjà vu", "déjà-vu"},
		{"---", ""},
		{"", ""},
		{"Report_2024", "report-2024"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}
