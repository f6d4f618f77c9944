package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"relstamp/internal/core/tracker"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		err      error
		code     string
		exitCode int
	}{
		{tracker.ErrNoActiveDocument, CodeNoActiveDocument, ExitNoActiveDocument},
		{&tracker.ParseError{Input: "x", Err: errors.New("bad")}, CodeParseError, ExitParse},
		{fmt.Errorf("reset: %w", &tracker.PersistError{Target: "settings", Err: errors.New("eacces")}), CodePersistence, ExitPersistence},
		{usageError("bad flag"), CodeUsage, ExitUsage},
		{errors.New("boom"), CodeInternalError, ExitGeneral},
	}
	for _, tc := range cases {
		got := FromError(tc.err)
		assert.Equal(t, tc.code, got.Code, tc.err.Error())
		assert.Equal(t, tc.exitCode, got.ExitCode, tc.err.Error())
	}
}

func TestPrintError(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	printError(&out, &CLIError{Message: "no active document", Hint: "open one"})
	assert.Equal(t, "Error: no active document\nHint: open one\n", out.String())
}
