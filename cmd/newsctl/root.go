package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/client"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("NEWSCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "newsctl",
		Short:         "Client for the news sentiment service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("server", "http://127.0.0.1:8000", "service base URL")
	root.PersistentFlags().Duration("timeout", 15*time.Second, "timeout for analyze and audio requests")
	root.PersistentFlags().Duration("narrate-timeout", 30*time.Second, "timeout for narrate requests")
	_ = v.BindPFlags(root.PersistentFlags())

	newClient := func() *client.Client {
		return client.New(client.Options{
			Server:         v.GetString("server"),
			Timeout:        v.GetDuration("timeout"),
			NarrateTimeout: v.GetDuration("narrate-timeout"),
		})
	}

	root.AddCommand(newAnalyzeCmd(newClient), newNarrateCmd(newClient), newVersionCmd())
	return root
}

func newAnalyzeCmd(newClient func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <company>",
		Short: "Fetch and classify recent news about a company",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := newClient().Analyze(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the raw JSON report")
	return cmd
}

func newNarrateCmd(newClient func() *client.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrate <company>",
		Short: "Generate the translated audio summary for a company",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.Narrate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\nfile: %s\nlanguage: %s\n", resp.Message, resp.File, resp.Language)

			target, _ := cmd.Flags().GetString("download")
			if target == "" {
				return nil
			}
			f, err := os.Create(target)
			if err != nil {
				return fmt.Errorf("create %s: %w", target, err)
			}
			n, err := c.DownloadAudio(cmd.Context(), f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %d bytes to %s\n", n, target)
			return nil
		},
	}
	cmd.Flags().String("download", "", "save the generated audio to this path")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "newsctl %s (commit %s)\n", version, commit)
		},
	}
}

func printReport(w io.Writer, report news.Report) {
	a := report.Analysis
	fmt.Fprintf(w, "News sentiment for %s\n", report.Company)
	fmt.Fprintf(w, "Articles: %d  Positive: %d  Negative: %d  Neutral: %d\n",
		a.TotalArticles,
		a.SentimentCounts[news.SentimentPositive],
		a.SentimentCounts[news.SentimentNegative],
		a.SentimentCounts[news.SentimentNeutral],
	)
	if len(a.UniqueTopics) > 0 {
		fmt.Fprintf(w, "Topics: %s\n", strings.Join(a.UniqueTopics, ", "))
	}
	for i, article := range report.Articles {
		fmt.Fprintf(w, "\n%d. [%s] %s\n   %s\n   %s\n", i+1, article.Sentiment, article.Title, article.Summary, article.Link)
	}
}
