package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wildmenipedia/internal/fusion"
	"wildmenipedia/internal/service"
)

func newAskCommand() *cobra.Command {
	var (
		topK     int
		style    = fusion.DefaultStyle()
		urls     []string
		markdown bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from the graph and optional web pages",
		Long: `Ask resolves the question to graph entities, ranks their facts and
cites the pages given with --url.

Example:
  wildmenipedia ask "who was Marie Curie"
  wildmenipedia ask "who was Marie Curie" --url https://en.wikipedia.org/wiki/Marie_Curie --markdown`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			question := strings.Join(args, " ")
			resp, err := a.Answers.Answer(cmd.Context(), service.AnswerRequest{
				Question: question,
				TopK:     topK,
				Style:    style,
				WebURLs:  urls,
			})
			if err != nil {
				return err
			}

			if markdown {
				_, err := fmt.Fprint(cmd.OutOrStdout(), service.RenderMarkdown(strings.TrimSpace(question), resp.Result))
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp.Result)
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 0, "vector hits to request (0 uses the policy default)")
	cmd.Flags().StringVar(&style.Tone, "tone", style.Tone, "answer tone")
	cmd.Flags().IntVar(&style.Length, "length", style.Length, "target answer length in words")
	cmd.Flags().StringVar(&style.Audience, "audience", style.Audience, "target audience")
	cmd.Flags().IntVar(&style.Timeframe, "timeframe", style.Timeframe, "timeframe in days (0 for all time)")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "supporting web page (repeatable)")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print a markdown report instead of JSON")
	return cmd
}
