// Package uconfig holds the validated intent of a locking run and the helpers
// that turn user input into it.
package uconfig

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"ucb-locker/ucb/upage"
)

type (
	Config struct {
		Password        [upage.PasswordLength]byte
		BlockEraseWrite bool
		PatchMirrors    bool
	}
)

const (
	// OutputSuffix is appended to the input file's stem to name the output.
	OutputSuffix = "_locked"

	DefaultBlockEraseWrite = true
	DefaultPatchMirrors    = false
)

var (
	ErrInvalidPassword  = errors.New("password must be exactly 10 hex characters")
	ErrInvalidAnswer    = errors.New("please type y or n")
	ErrInputNotFound    = errors.New("file not found")
	ErrInputIsDirectory = errors.New("path is a directory")
)

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') ||
		('a' <= r && r <= 'f') ||
		('A' <= r && r <= 'F')
}

// ParsePassword accepts exactly 10 hex characters in either case.
func ParsePassword(text string) ([upage.PasswordLength]byte, error) {
	password := [upage.PasswordLength]byte{}
	text = strings.TrimSpace(text)
	if len(text) != upage.PasswordLength*2 || !lo.EveryBy([]rune(text), isHexDigit) {
		err := errors.Wrapf(ErrInvalidPassword, `ParsePassword error with input "%s"`, text)
		return password, err
	}
	bs, err := hex.DecodeString(text)
	if err != nil {
		err := errors.Wrapf(err, `ParsePassword unreachable code with input "%s"`, text)
		return password, err
	}
	copy(password[:], bs)
	return password, nil
}

func FormatPassword(password []byte) string {
	return strings.ToUpper(hex.EncodeToString(password))
}

// ParseYesNo reads a y/yes/n/no answer. An empty answer picks defaultValue.
func ParseYesNo(text string, defaultValue bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errors.Wrapf(ErrInvalidAnswer, `ParseYesNo error with input "%s"`, text)
	}
}

// CleanPath strips surrounding whitespace and quotes, as left by drag-and-drop
// into a terminal.
func CleanPath(text string) string {
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"`)
	text = strings.Trim(text, `'`)
	return text
}

func CheckInputFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(ErrInputNotFound, `CheckInputFile error with path "%s"`, path)
	}
	if err != nil {
		return errors.Wrapf(err, `CheckInputFile error reading "%s"`, path)
	}
	if info.IsDir() {
		return errors.Wrapf(ErrInputIsDirectory, `CheckInputFile error with path "%s"`, path)
	}
	return nil
}

// OutputPath derives the sibling output path: "dump.bin" becomes
// "dump_locked.bin".
func OutputPath(inputPath string) string {
	dir, base := filepath.Split(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem, ext = base, ""
	}
	return filepath.Join(dir, stem+OutputSuffix+ext)
}
