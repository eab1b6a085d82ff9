package prompt_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hekit/internal/adapters/prompt"
	"go.trai.ch/hekit/internal/core/domain"
)

func TestPrompter_Interactive(t *testing.T) {
	var out bytes.Buffer
	p := prompt.NewWithIO(strings.NewReader("3.6\r\nsecond\n"), &out, true)

	v, err := p.Prompt("version")
	require.NoError(t, err)
	assert.Equal(t, "3.6", v)
	assert.Equal(t, "version: ", out.String())

	v, err = p.Prompt("other")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestPrompter_LastLineWithoutNewline(t *testing.T) {
	p := prompt.NewWithIO(strings.NewReader("answer"), &bytes.Buffer{}, true)

	v, err := p.Prompt("key")
	require.NoError(t, err)
	assert.Equal(t, "answer", v)
}

func TestPrompter_EOF(t *testing.T) {
	p := prompt.NewWithIO(strings.NewReader(""), &bytes.Buffer{}, true)

	_, err := p.Prompt("key")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingRecipeArg.Error())
}

func TestPrompter_NonInteractive(t *testing.T) {
	var out bytes.Buffer
	p := prompt.NewWithIO(strings.NewReader("ignored\n"), &out, false)

	_, err := p.Prompt("version")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingRecipeArg.Error())
	assert.Empty(t, out.String())
}
