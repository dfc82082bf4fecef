package verify_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/herbarium"
	"github.com/fwojciec/herbarium/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture(t *testing.T) *herbarium.StoreReport {
	t.Helper()

	_, report := repairFixture(t)
	return report
}

func TestFormatConsole(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	verify.FormatConsole(&buf, reportFixture(t), false)
	out := buf.String()

	assert.Contains(t, out, "Verified 1 entities: 0 complete, 1 incomplete")
	assert.Contains(t, out, "Missing fields: 1")
	assert.Contains(t, out, "milk-thistle")
	assert.Contains(t, out, "zh-HK: missing functions")
	assert.NotContains(t, out, "\x1b[", "plain output carries no escape codes")
}

func TestFormatConsole_Color(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	verify.FormatConsole(&buf, reportFixture(t), true)

	assert.Contains(t, buf.String(), "\x1b[31m")
	assert.Contains(t, buf.String(), "\x1b[0m")
}

func TestFormatMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	verify.FormatMarkdown(&buf, reportFixture(t))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Content Verification Report\n"))
	assert.Contains(t, out, "| en | 1 | 100% |")
	assert.Contains(t, out, "### milk-thistle")
	assert.Contains(t, out, "- `zh-HK`: missing functions")
}

func TestFormatJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, verify.FormatJSON(&buf, reportFixture(t)))

	var decoded struct {
		TotalEntities int `json:"total_entities"`
		Entities      []struct {
			Slug          string                       `json:"slug"`
			Complete      bool                         `json:"complete"`
			MissingFields map[string][]herbarium.Field `json:"missing_fields"`
		} `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 1, decoded.TotalEntities)
	require.Len(t, decoded.Entities, 1)
	assert.Equal(t, "milk-thistle", decoded.Entities[0].Slug)
	assert.False(t, decoded.Entities[0].Complete)
	assert.Equal(t, []herbarium.Field{herbarium.FieldFunctions}, decoded.Entities[0].MissingFields["zh-HK"])
}
