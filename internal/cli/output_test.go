package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdom/internal/dom"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "json",
		Out:       buf,
		SandboxID: "sandbox-test",
	}

	err := formatter.Success(map[string]string{"tag": "<BUTTON>"})
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "sandbox-test", resp.SandboxID)
	assert.Nil(t, resp.Error)
	assert.Contains(t, buf.String(), `"<BUTTON>"`, "markup is not HTML-escaped")
}

func TestOutputFormatter_JSONSuccessWithoutSandbox(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Out: buf}

	require.NoError(t, formatter.Success(SelectorResult{Input: "p", TagName: "P"}))
	assert.NotContains(t, buf.String(), "sandbox_id")
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Out:    buf,
	}

	err := formatter.Error("E001", "invalid selector", nil)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E001", resp.Error.Code)
	assert.Equal(t, "invalid selector", resp.Error.Message)
	assert.Empty(t, resp.Error.DOMCode)
}

func TestOutputFormatter_JSONErrorCarriesDOMCode(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Out: buf}

	_, cause := dom.ParseSelector("div.x")
	wrapped := fmt.Errorf("root: %w", cause)
	require.NoError(t, formatter.Error(ErrCodeSelector, "invalid selector", wrapped))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSelector, resp.Error.Code)
	assert.Equal(t, string(dom.ErrCodeInvalidQuerySelector), resp.Error.DOMCode)
	assert.Contains(t, resp.Error.Message, "invalid selector: root: ")
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Out:    buf,
	}

	err := formatter.Success("BUTTON")
	require.NoError(t, err)
	assert.Equal(t, "BUTTON\n", buf.String())
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Out:    buf,
	}

	err := formatter.Error(ErrCodeStore, "failed to open database", errors.New("disk full"))
	require.NoError(t, err)
	assert.Equal(t, "Error [E203]: failed to open database: disk full\n", buf.String())
}

func TestOutputFormatter_Notef(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Out:     buf,
				Verbose: tt.verbose,
			}

			formatter.Notef("stored %s", "page")

			if tt.wantLog {
				assert.Equal(t, "stored page\n", buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestOutputFormatter_NotesKeepJSONClean(t *testing.T) {
	out := &bytes.Buffer{}
	notes := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Out: out, Notes: notes, Verbose: true, SandboxID: "sb-1"}

	formatter.Notef("diagnostic")
	require.NoError(t, formatter.Success(SelectorResult{Input: "p", TagName: "P"}))

	var resp Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp), "only the envelope is written to Out")
	assert.Equal(t, "diagnostic\n", notes.String())
}

func TestOutputFormatter_TextNotesSandbox(t *testing.T) {
	out := &bytes.Buffer{}
	notes := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Out: out, Notes: notes, Verbose: true, SandboxID: "sb-1"}

	require.NoError(t, formatter.Success(SelectorResult{Input: "p", TagName: "P"}))
	assert.Equal(t, "P\n", out.String())
	assert.Equal(t, "sandbox sb-1\n", notes.String())
}

func TestOutputFormatter_TextWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Out: buf}

	require.NoError(t, formatter.Success(SelectorResult{Input: "p", TagName: "P"}))
	assert.Equal(t, "P\n", buf.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to store snapshot", base)

	assert.Equal(t, "failed to store snapshot: disk full", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, "no match", NewExitError(ExitFailure, "no match").Error())
}
