package cmds

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-tourneyform/pkg/prompt"
)

type scriptedDriver struct {
	inputs []string
	info   []string
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", prompt.ErrAborted
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return -1, prompt.ErrAborted
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func run(t *testing.T, driver *scriptedDriver, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	submitCollection, submitValues, submitYes, submitNoInput = "", nil, false, false
	previous := newPromptDriver
	newPromptDriver = func(*cobra.Command) prompt.PromptDriver { return driver }
	t.Cleanup(func() { newPromptDriver = previous })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return out.String(), err
}

func exitCode(err error) int {
	var ee ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return -1
}

func TestCollectionsCmd(t *testing.T) {
	out, err := run(t, &scriptedDriver{}, "collections")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "winner")
	assert.Contains(t, lines, "tournamentdetail")
	assert.Equal(t, "tournament", lines[0])
}

func TestFieldsCmd(t *testing.T) {
	out, err := run(t, &scriptedDriver{}, "fields", "upcomingscrim")
	require.NoError(t, err)

	assert.Contains(t, out, "FIELD")
	assert.Regexp(t, `startdate\s+date`, out)
	assert.Regexp(t, `time\s+time`, out)

	_, err = run(t, &scriptedDriver{}, "fields", "nope")
	assert.Equal(t, ExitUsage, exitCode(err))
}

func TestSubmitCmd_NoInput(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	driver := &scriptedDriver{}
	t.Setenv("TOURNEYFORM_API_BASE_URL", srv.URL)
	_, err := run(t, driver, "submit", "--no-input", "-c", "winner",
		"--set", "name=Alpha", "--set", "teamname=Bravo", "--set", "kill=12", "--set", "imgSrc=x.png")
	require.NoError(t, err)

	assert.Equal(t, `{"collection":"winner","data":[{"name":"Alpha","teamname":"Bravo","kill":"12","imgSrc":"x.png"}]}`, body)
	assert.Equal(t, []string{"✅ Submission successful!"}, driver.info)
}

func TestSubmitCmd_PromptsMissingFields(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"duplicate id"}`))
	}))
	defer srv.Close()

	driver := &scriptedDriver{inputs: []string{"Scrim", "", "18:45", "Erangel"}}
	t.Setenv("TOURNEYFORM_API_BASE_URL", srv.URL)
	_, err := run(t, driver, "submit", "-c", "upcomingscrim")

	assert.Equal(t, ExitFailed, exitCode(err))
	assert.Equal(t, `{"collection":"upcomingscrim","data":[{"name":"Scrim","time":"6:45 PM","map":"Erangel"}]}`, body)
	assert.Equal(t, []string{"❌ duplicate id"}, driver.info)
}

func TestSubmitCmd_Abort(t *testing.T) {
	_, err := run(t, &scriptedDriver{}, "submit")
	assert.Equal(t, ExitAborted, exitCode(err))
}

func TestSubmitCmd_BadAssignment(t *testing.T) {
	_, err := run(t, &scriptedDriver{}, "submit", "--no-input", "--set", "novalue")
	assert.Equal(t, ExitUsage, exitCode(err))
}

func TestSubmitCmd_NoCollection(t *testing.T) {
	driver := &scriptedDriver{}
	_, err := run(t, driver, "submit", "--no-input")
	assert.Equal(t, ExitFailed, exitCode(err))
	assert.Equal(t, []string{"❌ Please select a collection"}, driver.info)
}
