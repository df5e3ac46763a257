package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/akarlsen/githist/internal/cache"
	"github.com/akarlsen/githist/internal/config"
	"github.com/akarlsen/githist/internal/git"
	"github.com/akarlsen/githist/internal/ui"
)

var (
	cfg      = config.Default()
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "githist [path]",
	Short: "A terminal browser for git commit history",
	Long: `githist - browse a repository's commit history in the terminal:
per-branch commit lists, branch switching, and a per-file summary of
what every commit changed.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}
		run(path)
	},
}

func init() {
	rootCmd.Flags().DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL,
		"how long fetched history stays cached")
	rootCmd.Flags().StringVar(&cfg.LogFile, "log-file", cfg.LogFile,
		"write logs to this file (logging is off when empty)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel.String(),
		"log level (debug, info, warn, error)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// fatal reports a startup problem and exits without entering the
// interactive loop.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func run(path string) {
	log := newLogger()

	repo, err := git.Open(path, log)
	if err != nil {
		fatal("Error: not a git repository: %v", err)
	}

	c := cache.New(cfg.CacheTTL)

	branches, err := repo.Branches()
	if err != nil {
		fatal("Error: failed to list branches: %v", err)
	}
	c.SetBranches(repo.Path(), branches)

	branch, ok := pickStartBranch(repo, branches)
	if !ok {
		fatal("Error: no valid branches found in the repository")
	}

	commits, err := repo.Commits(branch)
	if err != nil {
		fatal("Error: failed to load commits: %v", err)
	}
	if len(commits) == 0 {
		fatal("No commits found on branch %s", branch)
	}
	c.SetCommits(branch, commits)

	authors, err := repo.Authors()
	if err != nil {
		fatal("Error: failed to list authors: %v", err)
	}
	c.SetAuthors(repo.Path(), authors)

	log.WithFields(logrus.Fields{
		"branch":   branch,
		"commits":  len(commits),
		"branches": len(branches),
	}).Info("starting browser")

	state := ui.BrowseState{
		Commits:       commits,
		CurrentBranch: branch,
		Branches:      branches,
	}

	p := tea.NewProgram(ui.NewModel(repo, c, log, state, authors), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("Error running app: %v", err)
	}
}

// pickStartBranch prefers the first listed branch, then falls back to
// the common default names.
func pickStartBranch(repo *git.Repository, branches []string) (string, bool) {
	if len(branches) > 0 {
		return branches[0], true
	}
	for _, name := range []string{"main", "master"} {
		if repo.BranchExists(name) {
			return name, true
		}
	}
	return "", false
}

func newLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	if level, err := logrus.ParseLevel(logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(cfg.LogLevel)
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log file: %v\n", err)
		} else {
			log.SetOutput(f)
			log.SetFormatter(&logrus.TextFormatter{DisableColors: true})
		}
	}

	return log
}
