package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/examples"
	"github.com/phravins/gptflow/internal/history"
	"github.com/phravins/gptflow/internal/render"
	"github.com/phravins/gptflow/internal/session"
	"github.com/phravins/gptflow/internal/tui"
	"github.com/phravins/gptflow/internal/web"
)

var (
	configPath   string
	ephemeral    bool
	offline      bool
	exportFormat string
	webPort      string
)

var rootCmd = &cobra.Command{
	Use:     "gptflow",
	Version: config.Version,
	Short:   "Write Inngest functions using GPT",
	Long: `gptflow turns a plain-English description into an Inngest step function:
- Describe a workflow and get generated code back
- Browse three built-in examples
- Keep a local history of everything you generated`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()
		return tui.RunRoot(a.session, a.renderOptions(0))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [prompt...]",
	Short: "Generate a function from a prompt and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.session.SubmitPrompt(context.Background(), strings.Join(args, " ")); err != nil {
			return errors.New(session.FailureMessage)
		}
		v := a.session.Snapshot()
		fmt.Println(render.Output(*v.Selected, a.renderOptions(100)))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect your generation history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past prompts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		v := a.session.Snapshot()
		if len(v.History) == 0 {
			fmt.Println(render.EmptyHistoryMessage)
			return nil
		}
		for i, e := range v.History {
			fmt.Printf("%3d  %s\n", i+1, strings.Join(strings.Fields(e.Prompt), " "))
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [n]",
	Short: "Show the n-th history entry (1 is the most recent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := strconv.Atoi(args[0])
		v := a.session.Snapshot()
		if err != nil || n < 1 || n > len(v.History) {
			return fmt.Errorf("no history entry %q (have %d)", args[0], len(v.History))
		}
		fmt.Println(render.Output(v.History[n-1], a.renderOptions(100)))
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole history to stdout as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()
		return history.Export(os.Stdout, a.session.Snapshot().History, exportFormat)
	},
}

var examplesCmd = &cobra.Command{
	Use:   "examples [n]",
	Short: "List the built-in examples, or show one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all := examples.All()
		if len(args) == 0 {
			for i, e := range all {
				fmt.Printf("%d  %s  [%s]\n", i+1, e.Title, strings.Join(e.Tags, ", "))
			}
			return nil
		}

		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(all) {
			return fmt.Errorf("no example %q (have %d)", args[0], len(all))
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Println(render.Output(all[n-1], render.Options{Width: 100, Theme: cfg.SyntaxTheme, DocsBaseURL: cfg.DocsBaseURL}))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workflows page on localhost",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()

		port := webPort
		if port == "" {
			port = a.cfg.WebPort
		}
		srv, err := web.NewServer(a.session, a.renderOptions(0), a.log)
		if err != nil {
			return err
		}
		fmt.Printf("Starting workflows page at http://127.0.0.1:%s\n", port)
		return srv.ListenAndServe(port)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the config file in the settings screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return tui.RunSettings(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}
		if err := config.SaveConfig(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Set %s = %s\n", args[0], config.GetString(args[0]))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.gptflow.yaml)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep history in memory only")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "answer from the built-in examples instead of the remote service")

	historyExportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or yaml")
	serveCmd.Flags().StringVar(&webPort, "port", "", "port to listen on (default from web_port)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(generateCmd, historyCmd, examplesCmd, serveCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
