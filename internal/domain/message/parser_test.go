package message_test

import (
	"testing"

	"github.com/rpggio/sitecord/internal/domain/message"
	"github.com/stretchr/testify/require"
)

func pct(n int) *int { return &n }

func TestParse_StatusFirst(t *testing.T) {
	parsed := message.Parse("finished with plumbing at 92 turtleback road")
	require.Equal(t, message.Parsed{
		Status: message.StatusCompleted,
		Task:   "plumbing",
		Where:  "92 turtleback road",
	}, parsed)
}

func TestParse_StatusFirstVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want message.Parsed
	}{
		{
			name: "at sign and no with",
			body: "Started framing @ 123 Main St",
			want: message.Parsed{Status: message.StatusInProgress, Task: "framing", Where: "123 Main St"},
		},
		{
			name: "percentage elsewhere",
			body: "paused   drywall at 5 Oak Ln   40% so far",
			want: message.Parsed{Status: message.StatusDelayed, Task: "drywall", Where: "5 Oak Ln 40% so far", Progress: pct(40)},
		},
		{
			name: "longest vocabulary word",
			body: "COMPLETED roofing at 7 Elm",
			want: message.Parsed{Status: message.StatusCompleted, Task: "roofing", Where: "7 Elm"},
		},
		{
			name: "hyphenated status",
			body: "in-progress tile at 9 Bay Rd",
			want: message.Parsed{Status: message.StatusInProgress, Task: "tile", Where: "9 Bay Rd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, message.Parse(tt.body))
		})
	}
}

func TestParse_AddressFirst(t *testing.T) {
	parsed := message.Parse("92 turtleback plumbing is 100% done")
	require.Equal(t, message.Parsed{
		Status:   message.StatusCompleted,
		Task:     "plumbing",
		Where:    "92 turtleback",
		Progress: pct(100),
	}, parsed)
}

func TestParse_AddressFirstPercentElsewhere(t *testing.T) {
	parsed := message.Parse("12 Birch painting 30% started")
	require.Equal(t, message.StatusInProgress, parsed.Status)
	require.Equal(t, "12 Birch", parsed.Where)
	require.Equal(t, "painting 30%", parsed.Task)
	require.NotNil(t, parsed.Progress)
	require.Equal(t, 30, *parsed.Progress)
}

func TestParse_KeywordFallback(t *testing.T) {
	parsed := message.Parse("Freedom ave plumbing is 50% done")
	require.Equal(t, message.StatusCompleted, parsed.Status)
	require.Empty(t, parsed.Task)
	require.Empty(t, parsed.Where)
	require.NotNil(t, parsed.Progress)
	require.Equal(t, 50, *parsed.Progress)
}

func TestParse_NoMatch(t *testing.T) {
	parsed := message.Parse("just checking in, no update")
	require.True(t, parsed.Empty())
	require.Equal(t, message.Parsed{}, message.Parse("   "))
}

func TestParse_PercentClamped(t *testing.T) {
	for _, body := range []string{
		"done with siding at 4 Pine 250%",
		"44 Pine siding is 999% done",
		"blocked 0% today",
	} {
		parsed := message.Parse(body)
		require.NotNil(t, parsed.Progress, body)
		require.GreaterOrEqual(t, *parsed.Progress, 0, body)
		require.LessOrEqual(t, *parsed.Progress, 100, body)
	}
}

func TestClampPercent(t *testing.T) {
	require.Equal(t, 0, message.ClampPercent(-5))
	require.Equal(t, 55, message.ClampPercent(55))
	require.Equal(t, 100, message.ClampPercent(420))
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "Finished with Plumbing", message.Normalize("  Finished\twith \n Plumbing  "))
	require.Equal(t, "finished with plumbing", message.Lower("  Finished\twith \n Plumbing  "))
	require.Equal(t, "15551234567", message.NormalizePhone("+1 (555) 123-4567"))
	require.Empty(t, message.NormalizePhone("n/a"))
}
