package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line   string
		want   []string
		wantOK bool
	}{
		{"cmd grid -visible=false", []string{"grid", "-visible=false"}, true},
		{"cmd   ", []string{}, true},
		{`cmd preset -name "my torus"`, []string{"preset", "-name", "my torus"}, true},
		{"grid", nil, false},
		{"Cmd grid", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		assert.Equal(t, tt.wantOK, ok, tt.line)
		if tt.wantOK {
			assert.Equal(t, len(tt.want), len(args), tt.line)
			for i := range tt.want {
				assert.Equal(t, tt.want[i], args[i])
			}
		}
	}
}

func TestRunWithFlags(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("preset")
	name := fs.String("name", "", "preset name")
	var got string
	r.Register("preset", "load an example", fs, func() error {
		got = *name
		return nil
	})

	require.NoError(t, r.Run("preset -name torus"))
	assert.Equal(t, "torus", got)
	require.NoError(t, r.Run("cmd preset -name cube"))
	assert.Equal(t, "cube", got)
}

func TestRunErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "always fails", nil, func() error { return boom })

	assert.ErrorIs(t, r.Run("fail"), boom)
	assert.ErrorIs(t, r.Run("nope"), ErrUnknown)
	assert.Error(t, r.Run(""))
	assert.Error(t, r.Run("fail -bogus"))
}

func TestNamesAndHelp(t *testing.T) {
	r := NewRegistry()
	r.Register("grid", "toggle grid", nil, func() error { return nil })
	r.Register("fps", "toggle fps", nil, func() error { return nil })
	assert.Equal(t, []string{"fps", "grid"}, r.Names())
	assert.Equal(t, []string{"fps: toggle fps", "grid: toggle grid"}, r.Help())
}

func TestSuggest(t *testing.T) {
	r := NewRegistry()
	r.Register("generate", "run the editor script", nil, func() error { return nil })
	r.Register("preset", "load an example", nil, func() error { return nil })

	assert.Equal(t, "generate", r.Suggest("generat"))
	assert.Equal(t, "", r.Suggest("xyz"))

	err := r.Run("presets")
	require.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "did you mean preset?")
}

func TestRunQuoted(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("preset")
	name := fs.String("name", "", "")
	r.Register("preset", "", fs, func() error { return nil })
	require.NoError(t, r.Run(`preset -name 'two words'`))
	assert.Equal(t, "two words", *name)
	assert.Error(t, r.Run(`preset -name "open`))
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("grid")
	visible := fs.Bool("visible", true, "")
	name := fs.String("name", "", "")
	var got []bool
	r.Register("grid", "", fs, func() error {
		got = append(got, *visible)
		return nil
	})

	require.NoError(t, r.Run("grid -visible=false -name floor"))
	require.NoError(t, r.Run("grid"))
	assert.Equal(t, []bool{false, true}, got)
	assert.Empty(t, *name)
}
