// gen-diagrams generates sample diagram output for README documentation.
// Run: go run ./cmd/gen-diagrams
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rendis/flowviz/internal/logging"
	"github.com/rendis/flowviz/pkg/diagram"
	"github.com/rendis/flowviz/pkg/flow"
)

func main() {
	logger := slog.New(logging.NewHandler(os.Stderr, slog.LevelWarn))

	// Order pipeline with a nested payment flow:
	// validate -> payment(charge -> receipt), then ship when paid or
	// notify when declined.
	validate := flow.NewNode()
	charge := flow.NewNode()
	receipt := flow.NewNode()
	charge.Then(receipt)
	payment := flow.NewFlow(charge)

	ship := flow.NewNode()
	notify := flow.NewNode()
	validate.Then(payment)
	payment.Connect("paid", ship)
	payment.Connect("declined", notify)

	pipeline := flow.NewFlow(validate)

	namespace := map[string]any{
		"validate": validate,
		"charge":   charge,
		"receipt":  receipt,
		"payment":  payment,
		"ship":     ship,
		"notify":   notify,
		"pipeline": pipeline,
	}

	opts := diagram.DefaultOptions()
	opts.Logger = logger

	out, diags, err := diagram.Visualize(pipeline, namespace, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "visualize error: %v\n", err)
		os.Exit(1)
	}
	if n := len(diags.Warnings()); n > 0 {
		fmt.Fprintf(os.Stderr, "%d warning(s), render %s\n", n, diags.RenderID())
	}

	outDir := filepath.Join("docs", "assets")
	os.MkdirAll(outDir, 0o755)
	os.WriteFile(filepath.Join(outDir, "diagram-sample.md"), []byte(out+"\n"), 0o644)
	fmt.Println(out)
}
