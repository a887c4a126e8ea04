package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/explorer_prompt.txt
var explorerSystemPrompt string

// RenderExplorerSystem renders the destination-explorer system prompt.
func RenderExplorerSystem(ctx context.Context) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(explorerSystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"CurrentYear": time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("explorer prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("explorer prompt render: empty result")
	}
	return msgs[0].Content, nil
}
