package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/mzml2isa/mzml2isa/internal/command/term"
	"github.com/mzml2isa/mzml2isa/internal/format"
)

// exitOnErr prints the error with an optional message prefix to stderr and
// terminates the application with exitCodeError.
// If the error wraps os.ErrNotExist, the application terminates with
// exitCodeNotExist instead.
// If err is nil, nothing happens.
func exitOnErr(err error, msg ...any) {
	if err == nil {
		return
	}

	if len(msg) == 0 {
		stderr.Println(errPrefix(), err)
	} else {
		stderr.Println(append([]any{errPrefix()},
			append(msg, ":", err)...)...)
	}

	if errors.Is(err, os.ErrNotExist) {
		exitFunc(exitCodeNotExist)
	}

	exitFunc(exitCodeError)
}

// exitOnErrf is exitOnErr with a format string message.
func exitOnErrf(err error, format string, v ...any) {
	if err == nil {
		return
	}

	exitOnErr(err, fmt.Sprintf(format, v...))
}

func errPrefix() string {
	return term.RedHighlight("ERROR:")
}

func mustWriteRow(formatter format.Formatter, row ...any) {
	err := formatter.WriteRow(row...)
	exitOnErr(err)
}
