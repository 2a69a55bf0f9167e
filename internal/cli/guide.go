package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packsmith/packsmith/docs"
	"github.com/packsmith/packsmith/internal/ui"
)

var guideCmd = &cobra.Command{
	Use:   "guide [topic]",
	Short: "Read the bundled documentation",
	Long: `Renders the documentation bundled with the pks binary. Run without
arguments to list topics.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := guideTopics()
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				names := make([]string, 0, len(topics))
				for _, t := range topics {
					names = append(names, t.name)
				}
				outputSuccess(names, &Meta{Count: len(names)})
				return nil
			}
			table := ui.NewTable(2)
			for _, t := range topics {
				table.AddRow(t.name, t.title)
			}
			fmt.Print(table.String())
			fmt.Println(ui.Hint("read one with 'pks guide <topic>'"))
			return nil
		}

		want := strings.ToLower(args[0])
		for _, t := range topics {
			if t.name != want {
				continue
			}
			content, err := fs.ReadFile(docs.FS, t.path)
			if err != nil {
				return handleError(ErrInternal, err, "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{
					"topic":    t.name,
					"markdown": string(content),
				}, nil)
				return nil
			}
			display := ui.NewDisplayContext()
			rendered, err := ui.RenderMarkdown(string(content), display.AvailableWidth(ui.MarkdownRenderMargin))
			if err != nil {
				fmt.Println(string(content))
				return nil
			}
			fmt.Print(rendered)
			return nil
		}
		return handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("unknown topic %q", args[0]),
			"run 'pks guide' to list topics")
	},
}

type guideTopic struct {
	name  string
	title string
	path  string
}

// guideTopics walks the embedded docs tree. Topic names are file names
// without the .md extension; titles come from the first heading.
func guideTopics() ([]guideTopic, error) {
	var topics []guideTopic
	err := fs.WalkDir(docs.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".md") {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ".md")
		content, readErr := fs.ReadFile(docs.FS, p)
		if readErr != nil {
			return readErr
		}
		topics = append(topics, guideTopic{
			name:  name,
			title: firstHeading(string(content)),
			path:  p,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].name < topics[j].name })
	return topics, nil
}

func firstHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
