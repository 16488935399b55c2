package ui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"ucb-locker/ds"
	"ucb-locker/ucb/uconfig"
)

type Step string

const (
	StepPath     = Step("path")
	StepPassword = Step("password")
	StepBlock    = Step("block")
	StepMirror   = Step("mirror")
	StepDone     = Step("done")
)

// Wizard collects a locking configuration one question at a time. Invalid
// answers keep the wizard on the same question.
type Wizard struct {
	step       Step
	input      string
	problem    string
	path       string
	config     uconfig.Config
	aborted    bool
	checkInput func(string) error
}

func NewWizard() *Wizard {
	return &Wizard{
		step:       StepPath,
		checkInput: uconfig.CheckInputFile,
	}
}

func (w *Wizard) Step() Step {
	return w.step
}

func (w *Wizard) Done() bool {
	return w.step == StepDone
}

func (w *Wizard) Aborted() bool {
	return w.aborted
}

func (w *Wizard) Path() string {
	return w.path
}

func (w *Wizard) Config() uconfig.Config {
	return w.config
}

func (w *Wizard) submit() {
	var err error
	switch w.step {
	case StepPath:
		path := uconfig.CleanPath(w.input)
		if err = w.checkInput(path); err == nil {
			w.path = path
			w.step = StepPassword
		}
	case StepPassword:
		if w.config.Password, err = uconfig.ParsePassword(w.input); err == nil {
			w.step = StepBlock
		}
	case StepBlock:
		if w.config.BlockEraseWrite, err = uconfig.ParseYesNo(w.input, uconfig.DefaultBlockEraseWrite); err == nil {
			w.step = StepMirror
		}
	case StepMirror:
		if w.config.PatchMirrors, err = uconfig.ParseYesNo(w.input, uconfig.DefaultPatchMirrors); err == nil {
			w.step = StepDone
		}
	}

	w.input = ""
	w.problem = ""
	if err != nil {
		w.problem = errors.Cause(err).Error()
	}
}

func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		w.aborted = true
		return w, tea.Quit
	case tea.KeyEnter:
		w.submit()
		if w.Done() {
			return w, tea.Quit
		}
	case tea.KeyBackspace:
		if runes := []rune(w.input); len(runes) > 0 {
			w.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		w.input += " "
	case tea.KeyRunes:
		w.input += string(keyMsg.Runes)
	}
	return w, nil
}

func prompt(step Step) string {
	switch step {
	case StepPath:
		return "Path to EEPROM dump (.bin): "
	case StepPassword:
		return "Enter 10-digit OCDS password (hex, no spaces): "
	case StepBlock:
		return "Block CAN/BSL erase-write? [Y/n]: "
	case StepMirror:
		return "Patch the 4 mirror pages as well? [y/N]: "
	default:
		log.Panic(ds.ErrUnreachableCode{Caller: "ui.prompt", Value: step})
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func (w *Wizard) View() string {
	output := "====  TC179x UCB Locker (interactive)  ====\n\n"

	if w.step != StepPath {
		output += "Dump     : " + w.path + "\n"
	}
	if w.step == StepBlock || w.step == StepMirror || w.step == StepDone {
		output += "Password : " + uconfig.FormatPassword(w.config.Password[:]) + "\n"
	}
	if w.step == StepMirror || w.step == StepDone {
		output += "Block    : " + yesNo(w.config.BlockEraseWrite) + "\n"
	}
	if w.step == StepDone {
		output += "Mirrors  : " + yesNo(w.config.PatchMirrors) + "\n"
		return output
	}

	output += "\n" + prompt(w.step) + w.input + "█\n"
	if w.problem != "" {
		output += fmt.Sprintf("  ✘ %s\n", w.problem)
	}
	output += "\n(esc to quit)\n"
	return output
}

func (w *Wizard) Init() tea.Cmd {
	return nil
}
