package fileio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSVMaps(t *testing.T) {
	headers, rows, err := ReadCSVMaps(strings.NewReader(
		"a,b,\n" +
			"1,2,3\n" +
			",,\n" +
			"4,,6\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "Column 3"}, headers)
	// The fully empty row is dropped
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "Column 3": "3"}, rows[0])
	assert.Equal(t, map[string]string{"a": "4", "b": "", "Column 3": "6"}, rows[1])
}

func TestReadCSVMapsRaggedRows(t *testing.T) {
	headers, rows, err := ReadCSVMaps(strings.NewReader(
		"a,b\n" +
			"1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"a": "1", "b": ""}, rows[0])
}

func TestReadCSVMapsEmpty(t *testing.T) {
	headers, rows, err := ReadCSVMaps(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, headers)
	assert.Nil(t, rows)
}
