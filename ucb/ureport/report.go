// Package ureport renders change records and inspection results for humans
// and for scripts.
package ureport

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"ucb-locker/ucb"
	"ucb-locker/ucb/uconfig"
	"ucb-locker/ucb/upage"
)

var bitLabels = map[string]string{
	upage.BitOCDSLock:   "OCDSLCK bit",
	upage.BitFProtEn0:   "FPROTEN0 bit",
	upage.BitFProtEn1:   "FPROTEN1 bit",
	upage.BitEraseWrite: "BSL write flag",
}

func line(label string, value string) string {
	return fmt.Sprintf("  %-14s : %s", label, value)
}

func transition(before string, after string) string {
	return before + " → " + after
}

func header(change upage.Change) string {
	if change.Kind == upage.KindLock {
		return fmt.Sprintf("-- Page 0 (0x%04X) --", change.Offset)
	}
	return fmt.Sprintf("-- Page @0x%04X --", change.Offset)
}

func bitLabel(name string) string {
	label, ok := bitLabels[name]
	if !ok {
		return name
	}
	return label
}

func RenderChange(change upage.Change) string {
	lines := []string{header(change)}
	if change.Password != nil {
		lines = append(lines, line(
			"password",
			transition(
				uconfig.FormatPassword(change.Password.Before),
				uconfig.FormatPassword(change.Password.After),
			),
		))
	}
	lines = append(
		lines,
		lo.Map(
			change.Bits,
			func(bit upage.BitChange, _ int) string {
				return line(bitLabel(bit.Name), transition(fmt.Sprint(bit.Before), fmt.Sprint(bit.After)))
			},
		)...,
	)
	lines = append(lines, line(
		"checksum",
		transition(fmt.Sprintf("%02X", change.Checksum.Before), fmt.Sprintf("%02X", change.Checksum.After)),
	))
	return strings.Join(lines, "\n")
}

// RenderText renders every change followed by the confirmation line.
func RenderText(changes []upage.Change, outputPath string) string {
	blocks := lo.Map(
		changes,
		func(change upage.Change, _ int) string {
			return RenderChange(change)
		},
	)
	return strings.Join(blocks, "\n") + "\n\n✔  Saved as: " + outputPath + "\n"
}

func hexByte(b byte) string {
	return fmt.Sprintf("%02X", b)
}

func hexOffset(offset int) string {
	return fmt.Sprintf("0x%04X", offset)
}

func beforeAfter(before any, after any) *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("before", before)
	m.Set("after", after)
	return m
}

func changeToMap(change upage.Change) *orderedmap.OrderedMap {
	m := orderedmap.New()
	m.Set("offset", hexOffset(change.Offset))
	m.Set("kind", change.Kind)
	if change.Password != nil {
		m.Set("password", beforeAfter(
			uconfig.FormatPassword(change.Password.Before),
			uconfig.FormatPassword(change.Password.After),
		))
	}
	bits := orderedmap.New()
	lo.ForEach(
		change.Bits,
		func(bit upage.BitChange, _ int) {
			bits.Set(bit.Name, beforeAfter(bit.Before, bit.After))
		},
	)
	m.Set("bits", bits)
	m.Set("checksum", beforeAfter(hexByte(change.Checksum.Before), hexByte(change.Checksum.After)))
	return m
}

// RenderJSON renders the same records as RenderText, keeping field order stable.
func RenderJSON(changes []upage.Change, outputPath string) ([]byte, error) {
	m := orderedmap.New()
	m.Set("output", outputPath)
	m.Set("pages", lo.Map(
		changes,
		func(change upage.Change, _ int) *orderedmap.OrderedMap {
			return changeToMap(change)
		},
	))
	bs, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "RenderJSON error marshalling changes")
	}
	return bs, nil
}

func RenderInspection(state ucb.LockState, pages []upage.State) string {
	lines := []string{
		"-- Lock state --",
		line("password", uconfig.FormatPassword(state.Password)),
		line(bitLabel(upage.BitOCDSLock), fmt.Sprint(state.OCDSLock)),
		line(bitLabel(upage.BitFProtEn0), fmt.Sprint(state.FProtEn0)),
		line(bitLabel(upage.BitFProtEn1), fmt.Sprint(state.FProtEn1)),
	}
	for _, flag := range state.EraseWrite {
		lines = append(lines, line(bitLabel(upage.BitEraseWrite), fmt.Sprintf("%d (@%s)", flag.Flag, hexOffset(flag.Offset))))
	}
	lines = append(lines, line("locked", fmt.Sprint(state.Locked())))
	lines = append(lines, "-- Page checksums --")
	for _, page := range pages {
		status := "ok"
		if !page.Valid {
			status = "BAD (expected " + hexByte(page.ComputedChecksum) + ")"
		}
		lines = append(lines, line(hexOffset(page.Offset), hexByte(page.StoredChecksum)+" "+status))
	}
	return strings.Join(lines, "\n") + "\n"
}

func RenderInspectionJSON(state ucb.LockState, pages []upage.State) ([]byte, error) {
	lockState := orderedmap.New()
	lockState.Set("password", uconfig.FormatPassword(state.Password))
	lockState.Set(upage.BitOCDSLock, state.OCDSLock)
	lockState.Set(upage.BitFProtEn0, state.FProtEn0)
	lockState.Set(upage.BitFProtEn1, state.FProtEn1)
	flags := orderedmap.New()
	for _, flag := range state.EraseWrite {
		flags.Set(hexOffset(flag.Offset), flag.Flag)
	}
	lockState.Set(upage.BitEraseWrite, flags)
	lockState.Set("locked", state.Locked())

	m := orderedmap.New()
	m.Set("lock_state", lockState)
	m.Set("pages", lo.Map(
		pages,
		func(page upage.State, _ int) *orderedmap.OrderedMap {
			pageMap := orderedmap.New()
			pageMap.Set("offset", hexOffset(page.Offset))
			pageMap.Set("stored_checksum", hexByte(page.StoredChecksum))
			pageMap.Set("computed_checksum", hexByte(page.ComputedChecksum))
			pageMap.Set("valid", page.Valid)
			return pageMap
		},
	))
	bs, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "RenderInspectionJSON error marshalling state")
	}
	return bs, nil
}
