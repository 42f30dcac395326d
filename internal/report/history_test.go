package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/pdfscrub/internal/audit"
)

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, []audit.RunRecord{
		{RunID: "run_20240102T030405", Source: "/in", FilesProcessed: 4, Succeeded: 3, Failed: 1, TotalPages: 10, DroppedPages: 2, Duration: "1.5s"},
	}))
	for _, want := range []string{"RUN", "run_20240102T030405", "/in", "1.5s"} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintHistory(&buf, nil))
	assert.Equal(t, "No runs recorded\n", buf.String())
}
