package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer"
	"github.com/Carmen-Shannon/oxy-bulb/engine/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSets(t *testing.T) {
	cmds, err := parseSets([]string{"power=6", "color=#ff8800", "param_x="})
	require.NoError(t, err)
	assert.Equal(t, []session.Command{
		session.SetParamText{Name: "power", Raw: "6"},
		session.SetParamText{Name: "color", Raw: "#ff8800"},
		session.SetParamText{Name: "param_x", Raw: ""},
	}, cmds)
}

func TestParseSetsRejectsMissingName(t *testing.T) {
	for _, in := range []string{"power", "=3", " =1"} {
		_, err := parseSets([]string{in})
		assert.Error(t, err, in)
	}
}

func TestRunRejectsBadLogLevel(t *testing.T) {
	assert.Error(t, run([]string{"--log-level", "loud"}))
}

func TestRunRejectsMissingExplicitConfig(t *testing.T) {
	assert.Error(t, run([]string{"--config", t.TempDir() + "/missing.toml"}))
}

func TestAlertOnSurfaceLoss(t *testing.T) {
	var buf bytes.Buffer
	alert(&buf, fmt.Errorf("present: %w", renderer.ErrSurfaceLost))
	assert.Contains(t, buf.String(), "render surface was lost")
	assert.Contains(t, buf.String(), "Restart oxy-bulb")
}

func TestAlertIgnoresOtherErrors(t *testing.T) {
	var buf bytes.Buffer
	alert(&buf, errors.New("invalid --set"))
	assert.Empty(t, buf.String())
}
