package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"zomato-etl/geocode"
)

const testHeader = "name,listed_in(city),listed_in(type),online_order,book_table,approx_cost(for two people),rate,votes"

// writeSource writes a CSV extract with testHeader and the given rows.
func writeSource(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	return writeFile(t, dir, name, testHeader+"\n"+strings.Join(rows, "\n")+"\n")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func ptr[T any](v T) *T { return &v }

func addr(locality string) string {
	return locality + ", " + DefaultAddressSuffix
}

// fakeResolver answers from fixed tables and records every call.
// Addresses absent from both tables are not found.
type fakeResolver struct {
	results map[string]geocode.LatLng
	errs    map[string]error
	calls   []string
}

func (f *fakeResolver) Resolve(_ context.Context, address string) (geocode.LatLng, error) {
	f.calls = append(f.calls, address)
	if err, ok := f.errs[address]; ok {
		return geocode.LatLng{}, err
	}
	if ll, ok := f.results[address]; ok {
		return ll, nil
	}
	return geocode.LatLng{}, &geocode.NotFoundError{Address: address}
}
