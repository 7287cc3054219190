package cmd

import (
	"bytes"
	"testing"

	"github.com/nfrund/myprofile/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNormalizeGender(t *testing.T) {
	tests := map[string]string{
		"male":              "Male",
		"FEMALE":            "Female",
		" non-binary ":      "Non-binary",
		"prefer not to say": "Prefer not to say",
		"":                  "",
	}
	for in, want := range tests {
		got, ok := normalizeGender(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := normalizeGender("robot")
	assert.False(t, ok)
}

func TestShow(t *testing.T) {
	fb := testutils.NewFakeBackend(t, map[string]any{
		"name":    "Ada",
		"address": map[string]any{"line1": "1 Main St", "line2": "Flat 4"},
	})

	out, err := run(t, "show", "--backend", fb.URL, "--token", "tok")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "1 Main St, Flat 4")
	assert.Contains(t, out, "(default)")
}

func TestEdit(t *testing.T) {
	fb := testutils.NewFakeBackend(t, testutils.SampleProfile())
	fsys = afero.NewMemMapFs()
	t.Cleanup(func() { fsys = afero.NewOsFs() })
	require.NoError(t, afero.WriteFile(fsys, "/tmp/me.png", []byte("\x89PNG\r\n\x1a\nfake"), 0o644))

	out, err := run(t, "edit", "--backend", fb.URL, "--token", "tok",
		"--name", "Ada L.", "--gender", "non-binary", "--avatar", "/tmp/me.png")
	require.NoError(t, err)

	assert.Contains(t, out, "✔ Profile updated")
	assert.Contains(t, out, "Ada L.")
	assert.Contains(t, out, "https://cdn.example.com/me.png", "canonical comes from the reload")

	updates := fb.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "me.png", updates[0].ImageName)
	assert.Equal(t, []string{"Non-binary"}, updates[0].Fields["gender"])
	require.Len(t, updates[0].Fields["address"], 1)
	assert.JSONEq(t, `{"line1":"1 Main St","line2":"Flat 4"}`, updates[0].Fields["address"][0])
}

func TestEdit_UnknownGender(t *testing.T) {
	fb := testutils.NewFakeBackend(t, testutils.SampleProfile())

	_, err := run(t, "edit", "--backend", fb.URL, "--token", "tok", "--gender", "robot")
	assert.Empty(t, fb.Updates())
	assert.ErrorContains(t, err, "unknown gender")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "profilectl v0.1.0\n", out)
}
