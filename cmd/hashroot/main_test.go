package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gordian-engine/hashroot"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	cmd.SetOut(&errOut)
	cmd.SetErr(&errOut)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func outputLine(t *testing.T, out, key string) string {
	t.Helper()

	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, key+": "); ok {
			return v
		}
	}
	t.Fatalf("no %q line in output %q", key, out)
	return ""
}

func TestRootCmd_keccak(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--n", "6", "--keccak")
	require.NoError(t, err)

	require.Equal(t, "keccak", outputLine(t, out, "scheme"))
	require.Equal(t, "6", outputLine(t, out, "n"))

	root := outputLine(t, out, "root")
	rootBytes, err := hexutil.Decode(root)
	require.NoError(t, err)
	require.Len(t, rootBytes, 32)

	pv, err := hexutil.Decode(outputLine(t, out, "public_values"))
	require.NoError(t, err)

	n, s, err := hashroot.DecodePublicValues(pv)
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, hashroot.SchemeBytePlaceholder, s)
}

func TestRootCmd_schemeOverridesKeccak(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--n", "4", "--keccak", "--scheme", "poseidon-pairwise")
	require.NoError(t, err)
	require.Equal(t, "poseidon-pairwise", outputLine(t, out, "scheme"))
}

func TestRootCmd_defaultsToPoseidon(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "--n", "2")
	require.NoError(t, err)
	require.Equal(t, "poseidon", outputLine(t, out, "scheme"))
}

func TestRootCmd_workersDoNotChangeRoot(t *testing.T) {
	t.Parallel()

	serial, _, err := execute(t, "--n", "30")
	require.NoError(t, err)

	parallel, _, err := execute(t, "--n", "30", "--workers", "4")
	require.NoError(t, err)

	require.Equal(t, outputLine(t, serial, "root"), outputLine(t, parallel, "root"))
}

func TestRootCmd_debugLogsRounds(t *testing.T) {
	t.Parallel()

	_, errOut, err := execute(t, "--n", "6", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, errOut, "Reduced level")
	require.Contains(t, errOut, "Computed root")
}

func TestRootCmd_rejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"too many leaves", []string{"--n", "188"}, "at most 186"},
		{"odd leaves", []string{"--n", "3"}, "must be even"},
		{"zero leaves", []string{"--n", "0"}, "must be positive"},
		{"unknown scheme", []string{"--n", "2", "--scheme", "sha256"}, "unknown scheme"},
		{"bad log level", []string{"--n", "2", "--log-level", "loud"}, "--log-level"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, errOut, err := execute(t, tc.args...)
			require.Error(t, err)
			require.Empty(t, out)
			require.Contains(t, errOut, tc.want)
		})
	}
}

func TestRootCmd_requiresN(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t)
	require.Error(t, err)
}
