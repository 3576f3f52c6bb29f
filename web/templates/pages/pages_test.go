package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navshell/internal/routes"
)

func TestForID(t *testing.T) {
	tests := []struct {
		id    routes.PageID
		class string
		title string
	}{
		{routes.One, "OnePage", "Page one"},
		{routes.Two, "TwoPage", "Page two"},
		{routes.Three, "ThreePage", "Page three"},
		{routes.NotFound, "NotFoundPage", "Page not found"},
		{routes.PageID(99), "NotFoundPage", "Page not found"},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ForID(tt.id).Render(context.Background(), &buf))
			assert.Contains(t, buf.String(), `class="`+tt.class+`"`)
			assert.Equal(t, tt.title, Title(tt.id))
		})
	}
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	err := ErrorPage(ErrorPageProps{ErrorTitle: "Method Not Allowed", ErrorMessage: "<nope>"}).
		Render(context.Background(), &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<h1>Method Not Allowed</h1>")
	assert.Contains(t, buf.String(), "&lt;nope&gt;")
}
