package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_Handle(t *testing.T) {
	tests := []struct {
		name  string
		msg   string
		attrs []slog.Attr
		want  string
	}{
		{
			name: "message_only",
			msg:  "✅ template generated",
			want: "2026/03/01 09:30:00 INFO ✅ template generated\n",
		},
		{
			name:  "with_attributes",
			msg:   "🔍 listing launch configurations",
			attrs: []slog.Attr{slog.String("region", "eu-west-1"), slog.Int("count", 3)},
			want:  "2026/03/01 09:30:00 INFO 🔍 listing launch configurations region=eu-west-1 count=3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

			record := slog.NewRecord(time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), slog.LevelInfo, tt.msg, 0)
			record.AddAttrs(tt.attrs...)

			assert.NoError(t, handler.Handle(context.Background(), record))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := []string{}
	for _, c := range RootCmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"create-template", "find-launch-configs", "version"})
}
