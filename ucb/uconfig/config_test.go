package uconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePassword(t *testing.T) {
	valid := map[string][5]byte{
		"AABBCCDDEE":    {0xAA, 0xBB, 0xCC, 0xDD, 0xEE},
		"0123456789":    {0x01, 0x23, 0x45, 0x67, 0x89},
		"aabbccddee":    {0xAA, 0xBB, 0xCC, 0xDD, 0xEE},
		" deadBEEF00 ": {0xDE, 0xAD, 0xBE, 0xEF, 0x00},
	}
	for input, expected := range valid {
		password, err := ParsePassword(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, password, input)
	}

	invalid := []string{
		"",
		"AABBCCDD",
		"AABBCCDDEEFF",
		"AABBCCDDEG",
		"AA BB CC DD",
		"0x01234567",
		"ÄABBCCDDE",
	}
	for _, input := range invalid {
		_, err := ParsePassword(input)
		assert.True(t, errors.Is(err, ErrInvalidPassword), input)
	}
}

func TestFormatPassword(t *testing.T) {
	assert.Equal(t, "AABBCCDDEE", FormatPassword([]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}))
	assert.Equal(t, "0123456789", FormatPassword([]byte{0x01, 0x23, 0x45, 0x67, 0x89}))
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input        string
		defaultValue bool
		expected     bool
	}{
		{"", true, true},
		{"", false, false},
		{"y", false, true},
		{"YES", false, true},
		{" n ", true, false},
		{"No", true, false},
	}
	for _, test := range tests {
		result, err := ParseYesNo(test.input, test.defaultValue)
		assert.NoError(t, err, test.input)
		assert.Equal(t, test.expected, result, test.input)
	}

	_, err := ParseYesNo("maybe", true)
	assert.True(t, errors.Is(err, ErrInvalidAnswer))
}

func TestCleanPath(t *testing.T) {
	assert.Equal(t, "/tmp/dump.bin", CleanPath(` "/tmp/dump.bin" `))
	assert.Equal(t, "/tmp/dump.bin", CleanPath(`'/tmp/dump.bin'`))
	assert.Equal(t, "dump.bin", CleanPath("dump.bin\n"))
}

func TestCheckInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dump.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 0x20), 0644))

	assert.NoError(t, CheckInputFile(path))
	assert.True(t, errors.Is(CheckInputFile(filepath.Join(dir, "missing.bin")), ErrInputNotFound))
	assert.True(t, errors.Is(CheckInputFile(dir), ErrInputIsDirectory))
}

func TestOutputPath(t *testing.T) {
	expectedValues := map[string]string{
		"dump.bin":              "dump_locked.bin",
		"/data/ucb/dump.bin":    "/data/ucb/dump_locked.bin",
		"dump":                  "dump_locked",
		"dump.tar.bin":          "dump.tar_locked.bin",
		filepath.Join("a", "b"): filepath.Join("a", "b_locked"),
		".bin":                  ".bin_locked",
	}
	for input, expected := range expectedValues {
		assert.Equal(t, expected, OutputPath(input), input)
	}
}
