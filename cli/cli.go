package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"

	"ucb-locker/ucb"
	"ucb-locker/ucb/uconfig"
	"ucb-locker/ucb/ureport"
	"ucb-locker/ui"
)

type (
	Args struct {
		Interactive *InteractiveCmd `arg:"subcommand:interactive" help:"answer the questions step by step (default)"`
		Lock        *LockCmd        `arg:"subcommand:lock" help:"lock a dump without prompting"`
		Inspect     *InspectCmd     `arg:"subcommand:inspect" help:"show lock bits and page checksums of a dump"`
	}
	InteractiveCmd struct{}
	LockCmd        struct {
		Dump     string `arg:"positional,required" help:"path to the UCB dump" placeholder:"DUMP"`
		Password string `arg:"--password,env:UCB_PASSWORD" help:"10 hex digit OCDS password" placeholder:"HEX"`
		NoBlock  bool   `arg:"--no-block" help:"leave CAN/BSL erase-write enabled"`
		Mirror   bool   `help:"also patch the 4 mirror pages"`
		Out      string `help:"path to destination file, <dump>_locked.<ext> by default" placeholder:"FILE"`
		Force    bool   `help:"overwrite the destination file"`
		JSON     bool   `arg:"--json" help:"print the report as JSON"`
	}
	InspectCmd struct {
		Dump string `arg:"positional,required" help:"path to the UCB dump" placeholder:"DUMP"`
		JSON bool   `arg:"--json" help:"print the result as JSON"`
	}

	LockOptions struct {
		Input  string
		Output string
		Config uconfig.Config
		Force  bool
		JSON   bool
	}
)

var (
	ErrOutputExists  = errors.New("destination file exists, use --force to overwrite it")
	ErrOutputIsInput = errors.New("destination file is the source file")
	ErrBadChecksums  = errors.New("some page checksums do not match")
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"TC179x UCB Locker.\n",
			"Adds a 5-byte OCDS password, sets OCDSLCK and FPROTEN on UCB page 0,",
			"optionally blocks CAN/BSL erase-write on page 3 and its mirrors,",
			"re-computes page checksums and saves the result as <dump>_locked.bin.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func samePath(a string, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// writeFile writes bs next to path first and renames it into place, so a
// failed write never leaves a truncated output behind.
func writeFile(path string, bs []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return errors.Wrapf(err, `writeFile error creating temporary file for "%s"`, path)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		return errors.Wrapf(err, `writeFile error writing "%s"`, tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, `writeFile error closing "%s"`, tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, `writeFile error setting mode of "%s"`, tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, `writeFile error renaming to "%s"`, path)
	}
	return nil
}

func StartLocking(options LockOptions, out io.Writer) error {
	if err := uconfig.CheckInputFile(options.Input); err != nil {
		return err
	}
	output := options.Output
	if output == "" {
		output = uconfig.OutputPath(options.Input)
	}
	if samePath(options.Input, output) {
		return errors.Wrapf(ErrOutputIsInput, `StartLocking error with destination "%s"`, output)
	}
	if CheckExistence(output) && !options.Force {
		return errors.Wrapf(ErrOutputExists, `StartLocking error with destination "%s"`, output)
	}

	image, err := os.ReadFile(options.Input)
	if err != nil {
		return errors.Wrapf(err, `StartLocking error reading "%s"`, options.Input)
	}
	patched, changes, err := ucb.Lock(image, options.Config)
	if err != nil {
		return err
	}
	if err := writeFile(output, patched); err != nil {
		return err
	}

	if options.JSON {
		bs, err := ureport.RenderJSON(changes, output)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(bs))
		return err
	}
	_, err = fmt.Fprint(out, ureport.RenderText(changes, output))
	return err
}

func StartInspecting(path string, asJSON bool, out io.Writer) error {
	if err := uconfig.CheckInputFile(path); err != nil {
		return err
	}
	image, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, `StartInspecting error reading "%s"`, path)
	}
	pages, err := ucb.Inspect(image)
	if err != nil {
		return err
	}
	state, err := ucb.ReadLockState(image)
	if err != nil {
		return err
	}

	if asJSON {
		bs, err := ureport.RenderInspectionJSON(*state, pages)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, string(bs)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprint(out, ureport.RenderInspection(*state, pages)); err != nil {
			return err
		}
	}

	for _, page := range pages {
		if !page.Valid {
			return ErrBadChecksums
		}
	}
	return nil
}

func StartInteractive(out io.Writer) error {
	wizard, err := ui.Start()
	if err != nil {
		return err
	}
	return finishInteractive(wizard, out)
}

// finishInteractive locks the dump the wizard asked about. A wizard that was
// aborted, or stopped before the last answer, writes nothing.
func finishInteractive(wizard *ui.Wizard, out io.Writer) error {
	if wizard.Aborted() || !wizard.Done() {
		_, err := fmt.Fprintln(out, "\nInterrupted — no changes written.")
		return err
	}
	return StartLocking(
		LockOptions{
			Input:  wizard.Path(),
			Config: wizard.Config(),
			Force:  true,
		},
		out,
	)
}

func lockOptions(cmd LockCmd) (*LockOptions, error) {
	password, err := uconfig.ParsePassword(cmd.Password)
	if err != nil {
		return nil, err
	}
	return &LockOptions{
		Input:  cmd.Dump,
		Output: cmd.Out,
		Config: uconfig.Config{
			Password:        password,
			BlockEraseWrite: !cmd.NoBlock,
			PatchMirrors:    cmd.Mirror,
		},
		Force: cmd.Force,
		JSON:  cmd.JSON,
	}, nil
}

func Run(args Args, out io.Writer) error {
	switch {
	case args.Lock != nil:
		options, err := lockOptions(*args.Lock)
		if err != nil {
			return err
		}
		return StartLocking(*options, out)
	case args.Inspect != nil:
		return StartInspecting(args.Inspect.Dump, args.Inspect.JSON, out)
	default:
		return StartInteractive(out)
	}
}

func Start() {
	log.SetFlags(0)
	log.SetPrefix("ucb-locker: ")

	args := Args{}
	arg.MustParse(&args)

	if err := Run(args, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
